package httperr

import "errors"

// Kind classifies a business error so handlers can map it to an HTTP status
// without matching on individual codes.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindInvalidInput      Kind = "invalid_input"
	KindConflict          Kind = "conflict"
	KindInvalidTransition Kind = "invalid_transition"
	KindUpstreamFailure   Kind = "upstream_failure"
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func NotFoundErr(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func InvalidInputErr(code string) error {
	return BusinessError{Kind: KindInvalidInput, Code: code}
}

func ConflictErr(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func InvalidTransitionErr(code string) error {
	return BusinessError{Kind: KindInvalidTransition, Code: code}
}

func UpstreamErr(code string) error {
	return BusinessError{Kind: KindUpstreamFailure, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return "", false
}
