package command

// ErrorKind says which guidance message a ParseError should produce.
type ErrorKind int

const (
	BadAmount ErrorKind = iota
	BadRate
	BadLookup
	BadEdit
)

// ParseError is a malformed command. It is meant for the user, not the log.
type ParseError struct {
	Kind ErrorKind
	Msg  string
}

func (e *ParseError) Error() string {
	return e.Msg
}

func newParseError(kind ErrorKind) *ParseError {
	var msg string
	switch kind {
	case BadAmount:
		msg = "unrecognized amount"
	case BadRate:
		msg = "bad rate format"
	case BadLookup:
		msg = "bad lookup format"
	case BadEdit:
		msg = "bad edit format"
	}
	return &ParseError{Kind: kind, Msg: msg}
}
