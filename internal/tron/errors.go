package tron

// LookupError is any failure to produce an AddressReport. Cause is shown to
// the user as is.
type LookupError struct {
	Cause string
	Err   error
}

func (e *LookupError) Error() string {
	return e.Cause
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

func lookupError(err error, cause string) *LookupError {
	if cause == "" && err != nil {
		cause = err.Error()
	}
	return &LookupError{Cause: cause, Err: err}
}
