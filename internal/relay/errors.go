package relay

import "errors"

// NotFoundError means a case or access code did not resolve. The message
// is deliberately generic: it never distinguishes a wrong identifier from
// one that belongs to another tenant, so the error cannot be used to
// enumerate reports.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// ValidationError is a policy failure the caller can act on: resubmit
// with acknowledged warnings, or retry once the report is linked to a
// case. It carries structured detail so the calling layer can render
// actionable UI.
type ValidationError struct {
	Reason    string
	HasPII    bool
	Warnings  []string
	Retryable bool
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// IsNotFound reports whether err is a resolution failure.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// AsValidation extracts a ValidationError, if err is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
