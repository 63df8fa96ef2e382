package expense

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/smartexpense/tracker/internal/extraction"
)

// corsError writes an error response with CORS headers set
func corsError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	http.Error(w, message, code)
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// serviceError maps the failure taxonomy to status codes: bad uploads are
// the client's fault, extraction transport failures are upstream problems,
// store failures are ours.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, extraction.ErrBadImage):
		corsError(w, "Unsupported or corrupt image", http.StatusBadRequest)
	case errors.Is(err, ErrExtraction):
		corsError(w, "Extraction service unavailable", http.StatusBadGateway)
	case errors.Is(err, ErrStore):
		corsError(w, "Internal server error", http.StatusInternalServerError)
	default:
		corsError(w, err.Error(), http.StatusBadRequest)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleScanReceipt accepts a receipt image upload and runs the full
// scan pipeline
func (s *Server) handleScanReceipt(w http.ResponseWriter, r *http.Request) {
	// High-resolution phone photos run large
	maxFormSize := int64(50 << 20) // 50MB
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		corsError(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		corsError(w, "No file provided", http.StatusBadRequest)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		corsError(w, "Error reading file", http.StatusInternalServerError)
		return
	}
	if len(data) == 0 {
		corsError(w, "Empty file", http.StatusBadRequest)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = contentTypeFromExt(header.Filename)
	}

	expense, err := s.service.ScanReceipt(r.Context(), data, contentType)
	if err != nil {
		slog.Error("Error scanning receipt", "filename", header.Filename, "error", err)
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, expense)
}

// contentTypeFromExt guesses a MIME type when the upload carries none.
// HEIC/HEIF must survive the guess so image normalization can detect them.
func contentTypeFromExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return "application/octet-stream"
	}
}

// handleListExpenses returns all one-time expenses, newest first
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.service.ListExpenses(true)
	if err != nil {
		slog.Error("Error listing expenses", "error", err)
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

// handleCreateExpense handles manual one-time expense entry
func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount   float64 `json:"amount"`
		Category string  `json:"category"`
		Date     *string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		corsError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	expense, err := s.service.AddExpense(req.Amount, req.Category, req.Date)
	if err != nil {
		slog.Error("Error creating expense", "error", err)
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, expense)
}

// handleListFixedExpenses returns all fixed monthly expenses
func (s *Server) handleListFixedExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.service.ListFixedExpenses()
	if err != nil {
		slog.Error("Error listing fixed expenses", "error", err)
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

// handleCreateFixedExpense handles manual fixed expense entry
func (s *Server) handleCreateFixedExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		IsRecurring *bool   `json:"isRecurring"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		corsError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Recurring unless the client says otherwise
	isRecurring := true
	if req.IsRecurring != nil {
		isRecurring = *req.IsRecurring
	}

	expense, err := s.service.AddFixedExpense(req.Amount, req.Category, isRecurring)
	if err != nil {
		slog.Error("Error creating fixed expense", "error", err)
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, expense)
}

// monthYearParams reads month/year query parameters, defaulting to the
// current month
func monthYearParams(r *http.Request, now time.Time) (time.Month, int, error) {
	month := now.Month()
	year := now.Year()

	if v := r.URL.Query().Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, errors.New("month must be an integer between 1 and 12")
		}
		month = time.Month(m)
	}
	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, errors.New("year must be an integer")
		}
		year = y
	}

	return month, year, nil
}

// handleStatistics returns the per-category breakdown for one month
func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	month, year, err := monthYearParams(r, time.Now())
	if err != nil {
		corsError(w, err.Error(), http.StatusBadRequest)
		return
	}

	breakdown, err := s.service.MonthlyBreakdown(month, year)
	if err != nil {
		slog.Error("Error computing breakdown", "month", month, "year", year, "error", err)
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, breakdown)
}

// handleSummary returns the narrative summary for one month
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	month, year, err := monthYearParams(r, time.Now())
	if err != nil {
		corsError(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := s.service.MonthlySummary(r.Context(), month, year)
	if err != nil {
		slog.Error("Error generating summary", "month", month, "year", year, "error", err)
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}
