package expense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/smartexpense/tracker/internal/extraction"
)

// IDGenerator generates unique IDs for records
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service composes the receipt pipeline and the read paths over the store.
type Service struct {
	db          DB
	text        extraction.TextProvider
	fields      extraction.FieldProvider
	insights    extraction.InsightsProvider
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source
func NewService(db DB, text extraction.TextProvider, fields extraction.FieldProvider, insights extraction.InsightsProvider) *Service {
	return &Service{
		db:          db,
		text:        text,
		fields:      fields,
		insights:    insights,
		idGenerator: &uuidGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, text extraction.TextProvider, fields extraction.FieldProvider, insights extraction.InsightsProvider, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		text:        text,
		fields:      fields,
		insights:    insights,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// ScanReceipt runs the full pipeline: OCR, field extraction, sanitization,
// persistence. The stages are strictly sequential. Transport failures abort
// before anything is written; malformed extraction output degrades to a
// defaulted record that is still persisted.
func (s *Service) ScanReceipt(ctx context.Context, imageData []byte, contentType string) (*Expense, error) {
	text, err := s.text.ExtractText(ctx, imageData, contentType)
	if err != nil {
		slog.Error("Failed to extract receipt text",
			"content_type", contentType,
			"image_size", len(imageData),
			"error", err,
		)
		// An undecodable upload is the client's problem, not an outage
		if errors.Is(err, extraction.ErrBadImage) {
			return nil, fmt.Errorf("extracting text: %w", err)
		}
		return nil, fmt.Errorf("%w: extracting text: %v", ErrExtraction, err)
	}

	// The NoTextFound sentinel flows through like any text; field extraction
	// then yields an empty candidate and the record defaults.
	candidate, err := s.fields.ExtractFields(ctx, text)
	if err != nil {
		slog.Error("Failed to extract fields", "error", err)
		return nil, fmt.Errorf("%w: extracting fields: %v", ErrExtraction, err)
	}

	expense := Sanitize(candidate)
	expense.ID = s.idGenerator.Generate()
	expense.CreatedAt = s.timeSource.Now()

	if err := s.db.SaveExpense(&expense); err != nil {
		return nil, fmt.Errorf("%w: saving expense: %v", ErrStore, err)
	}

	slog.Info("Receipt scanned",
		"id", expense.ID,
		"amount", expense.Amount,
		"category", expense.Category,
	)
	return &expense, nil
}

// AddExpense persists a manually entered one-time expense.
func (s *Service) AddExpense(amount float64, category string, date *string) (*Expense, error) {
	if amount < 0 {
		return nil, fmt.Errorf("amount must be non-negative")
	}
	if category == "" {
		category = "Other"
	}

	expense := &Expense{
		ID:        s.idGenerator.Generate(),
		Amount:    amount,
		Category:  category,
		Date:      date,
		CreatedAt: s.timeSource.Now(),
	}

	if err := s.db.SaveExpense(expense); err != nil {
		return nil, fmt.Errorf("%w: saving expense: %v", ErrStore, err)
	}
	return expense, nil
}

// AddFixedExpense persists a recurring monthly expense.
func (s *Service) AddFixedExpense(amount float64, category string, isRecurring bool) (*FixedExpense, error) {
	if category == "" {
		return nil, fmt.Errorf("category is required")
	}
	if amount < 0 {
		return nil, fmt.Errorf("amount must be non-negative")
	}

	expense := &FixedExpense{
		ID:          s.idGenerator.Generate(),
		Amount:      amount,
		Category:    category,
		IsRecurring: isRecurring,
		CreatedAt:   s.timeSource.Now(),
	}

	if err := s.db.SaveFixedExpense(expense); err != nil {
		return nil, fmt.Errorf("%w: saving fixed expense: %v", ErrStore, err)
	}
	return expense, nil
}

// ListExpenses returns all one-time expenses, newest first when requested.
func (s *Service) ListExpenses(newestFirst bool) ([]*Expense, error) {
	expenses, err := s.db.ListExpenses()
	if err != nil {
		return nil, fmt.Errorf("%w: listing expenses: %v", ErrStore, err)
	}
	if newestFirst {
		sort.Slice(expenses, func(i, j int) bool {
			return expenses[i].CreatedAt.After(expenses[j].CreatedAt)
		})
	}
	return expenses, nil
}

// ListFixedExpenses returns all fixed monthly expenses.
func (s *Service) ListFixedExpenses() ([]*FixedExpense, error) {
	expenses, err := s.db.ListFixedExpenses()
	if err != nil {
		return nil, fmt.Errorf("%w: listing fixed expenses: %v", ErrStore, err)
	}
	return expenses, nil
}

// MonthlyBreakdown aggregates both collections for one month. Month is
// 1-indexed (January = 1). A record appended concurrently may or may not be
// included; the result is informational, not accounting-grade.
func (s *Service) MonthlyBreakdown(month time.Month, year int) (*Breakdown, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid month: %d", month)
	}

	expenses, err := s.db.ListExpenses()
	if err != nil {
		return nil, fmt.Errorf("%w: listing expenses: %v", ErrStore, err)
	}
	fixed, err := s.db.ListFixedExpenses()
	if err != nil {
		return nil, fmt.Errorf("%w: listing fixed expenses: %v", ErrStore, err)
	}

	return aggregate(expenses, fixed, month, year), nil
}

// MonthlySummary produces a short narrative over one month's breakdown.
func (s *Service) MonthlySummary(ctx context.Context, month time.Month, year int) (string, error) {
	breakdown, err := s.MonthlyBreakdown(month, year)
	if err != nil {
		return "", err
	}

	// Nothing to analyze; skip the round trip
	if len(breakdown.Totals) == 0 {
		return fmt.Sprintf("No expenses recorded for %s %d.", month, year), nil
	}

	if s.insights == nil {
		return "", fmt.Errorf("summaries are not configured")
	}

	summary, err := s.insights.Summarize(ctx, month.String(), year, breakdown.Totals)
	if err != nil {
		slog.Error("Failed to generate summary", "month", month, "year", year, "error", err)
		return "", fmt.Errorf("%w: generating summary: %v", ErrExtraction, err)
	}
	return summary, nil
}
