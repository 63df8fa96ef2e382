package expense

import "errors"

// ErrExtraction marks a transport or HTTP failure against the OCR or
// field-extraction service. Nothing is persisted for the attempt and the
// caller must tell the user. Malformed model output is NOT this error; it is
// absorbed by defaulting.
var ErrExtraction = errors.New("extraction failed")

// ErrStore marks an I/O failure against the underlying store. Callers must
// not assume a partial write is visible.
var ErrStore = errors.New("store failure")
