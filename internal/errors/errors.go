package errors

import "errors"

type Category string

const (
	CategoryMalformedArtifact Category = "malformed_artifact"
	CategoryMissingArtifact   Category = "missing_artifact"
	CategoryInvalidInput      Category = "invalid_input"
	CategoryIOFailure         Category = "io_failure"
	CategoryNotifyFailed      Category = "notify_failed"
)

type classifiedError struct {
	category Category
	code     string
	hint     string
	cause    error
}

func (e *classifiedError) Error() string {
	if e.cause == nil {
		return "unknown error"
	}
	return e.cause.Error()
}

func (e *classifiedError) Unwrap() error {
	return e.cause
}

// Wrap tags cause with a category. A nil cause stays nil so call sites can
// wrap unconditionally.
func Wrap(cause error, category Category, code, hint string) error {
	if cause == nil {
		return nil
	}
	return &classifiedError{
		category: category,
		code:     code,
		hint:     hint,
		cause:    cause,
	}
}

func CategoryOf(err error) Category {
	var classified *classifiedError
	if errors.As(err, &classified) {
		return classified.category
	}
	return ""
}

func CodeOf(err error) string {
	var classified *classifiedError
	if errors.As(err, &classified) {
		return classified.code
	}
	return ""
}

func HintOf(err error) string {
	var classified *classifiedError
	if errors.As(err, &classified) {
		return classified.hint
	}
	return ""
}

func Is(err error, category Category) bool {
	return err != nil && CategoryOf(err) == category
}
