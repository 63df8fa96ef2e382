package extraction

import "context"

// NoTextFound is the sentinel returned by a TextProvider when the OCR service
// produced no text annotation. It is ordinary pipeline input, not an error:
// field extraction still runs and yields an empty candidate.
const NoTextFound = "No text found."

// Candidate is the raw, untrusted output of the field-extraction stage. Every
// field may be absent, wrong-typed, or out of range. It must never be
// persisted without sanitization.
type Candidate struct {
	Amount   any `json:"amount"`
	Category any `json:"category"`
	Date     any `json:"date"`
}

// TextProvider extracts plain text from a receipt image.
type TextProvider interface {
	// ExtractText runs OCR over the image and returns the detected text, or
	// NoTextFound when the service finds none. Transport and non-2xx failures
	// return an error.
	ExtractText(ctx context.Context, image []byte, contentType string) (string, error)
}

// FieldProvider turns OCR text into a candidate expense record.
type FieldProvider interface {
	// ExtractFields makes a single extraction attempt. Malformed model output
	// is not an error; it yields an empty Candidate. Only transport failures
	// return an error.
	ExtractFields(ctx context.Context, rawText string) (Candidate, error)
	// Close releases provider resources.
	Close() error
}

// InsightsProvider generates a short spending narrative from per-category
// monthly totals.
type InsightsProvider interface {
	Summarize(ctx context.Context, month string, year int, totals map[string]float64) (string, error)
}
