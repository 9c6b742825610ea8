package types

import "fmt"

// ValidationError reports rejected input: bad file type or size, empty
// question, and the like.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ExternalServiceError wraps a failure from one of the two external
// collaborators (text extraction, answer generation).
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// CapacityError is returned when a bounded resource is full, e.g. the
// session limit is reached.
type CapacityError struct {
	Resource string
	Limit    int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s limit of %d reached", e.Resource, e.Limit)
}

// NotFoundError reports an operation on an unknown session or document
// where a no-op is not appropriate.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ExtractKind classifies why text extraction failed.
type ExtractKind string

const (
	ExtractInvalidType       ExtractKind = "invalid-type"
	ExtractEmptyFile         ExtractKind = "empty-file"
	ExtractTooLarge          ExtractKind = "too-large"
	ExtractPasswordProtected ExtractKind = "password-protected"
	ExtractCorrupted         ExtractKind = "corrupted"
	ExtractNoText            ExtractKind = "no-extractable-text"
)

// ExtractionError is a typed extraction failure with a human-readable message.
type ExtractionError struct {
	Kind ExtractKind
	Err  error
}

func (e *ExtractionError) Error() string {
	switch e.Kind {
	case ExtractInvalidType:
		return "invalid file type, please upload a PDF file"
	case ExtractEmptyFile:
		return "the selected file is empty"
	case ExtractTooLarge:
		return "file size too large, please upload a PDF smaller than 50MB"
	case ExtractPasswordProtected:
		return "this PDF is password protected"
	case ExtractCorrupted:
		return "the PDF file is corrupted, please try a different file"
	case ExtractNoText:
		return "no readable text found in the PDF, the document might be scanned or contain only images"
	default:
		return "failed to process PDF file"
	}
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
