package table

import "fmt"

// LoadErrorKind classifies why a table file failed to load (§4.1, §7).
type LoadErrorKind int

const (
	// UnsupportedVersion means the header line's version string didn't
	// match any format this package knows how to read.
	UnsupportedVersion LoadErrorKind = iota + 1
	// Truncated means the byte stream ended mid-record or mid-field.
	Truncated
	// MalformedRecord means a record's structure didn't match what its
	// type byte promised (wrong field count, wrong tag byte, ...).
	MalformedRecord
	// UnresolvedReference means a record referred to an index (a symbol
	// number, a state number, a charset number, ...) that doesn't exist
	// in the table being loaded.
	UnresolvedReference
	// Inconsistent means the table was internally self-contradictory in a
	// way that isn't one of the above. The loader raises it when the table
	// has no Initial States record; it does not check symbol kinds of
	// group start/end symbols.
	Inconsistent
)

func (k LoadErrorKind) String() string {
	switch k {
	case UnsupportedVersion:
		return "UnsupportedVersion"
	case Truncated:
		return "Truncated"
	case MalformedRecord:
		return "MalformedRecord"
	case UnresolvedReference:
		return "UnresolvedReference"
	case Inconsistent:
		return "Inconsistent"
	default:
		return "LoadErrorKind(?)"
	}
}

// LoadError reports a failure to decode a grammar table, with the byte
// offset at which the problem was detected (§7).
type LoadError struct {
	Kind   LoadErrorKind
	Offset int
	Msg    string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load grammar table: %s at offset %d: %s", e.Kind, e.Offset, e.Msg)
}

func newLoadError(kind LoadErrorKind, offset int, format string, args ...interface{}) *LoadError {
	return &LoadError{Kind: kind, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}
