package treeseq

import "fmt"

// Kind classifies the failure modes of the tree-sequence subsystem. It is
// the Go-idiomatic replacement for msprime's MSP_ERR_* integer codes
// (lib/err.h): every kind below has a 1:1 counterpart there.
type Kind uint8

const (
	// Generic covers failures with no more specific kind.
	Generic Kind = iota
	// NoMemory signals an allocation that could not be satisfied.
	NoMemory
	// IO wraps an underlying I/O failure.
	IO
	// FileFormat signals a persisted file whose structure does not match
	// what the header or dimensions promise.
	FileFormat
	// FileVersion signals a malformed or missing format_version field.
	FileVersion
	// UnsupportedFileVersion signals a file whose major format version
	// does not match the reader's.
	UnsupportedFileVersion
	// BadMode signals an invalid mode/flag combination.
	BadMode
	// BadParamValue signals an out-of-domain parameter (e.g. a node id
	// of 0 passed to MRCA).
	BadParamValue
	// OutOfBounds signals an index outside its valid range.
	OutOfBounds
	// BadOrdering signals an unrecognised record ordering tag.
	BadOrdering
	// BadMutation signals a mutation whose position or node is out of
	// range for the record store it is being installed into.
	BadMutation
	// BadPopulationModel signals a malformed population-model parameter.
	BadPopulationModel
	// UnsupportedOperation signals an operation that is only valid under
	// a configuration the caller didn't choose (e.g. tracked-leaf counts
	// without WithLeafCounts).
	UnsupportedOperation
	// Overflow signals a count (links, populations, sites) that exceeded
	// its representable range.
	Overflow
)

// messages gives the fixed, human-readable string for each Kind.
var messages = [...]string{
	Generic:                "generic error",
	NoMemory:               "out of memory",
	IO:                     "i/o error",
	FileFormat:             "bad file format",
	FileVersion:            "bad file version",
	UnsupportedFileVersion: "unsupported file version",
	BadMode:                "bad mode",
	BadParamValue:          "bad parameter value",
	OutOfBounds:            "index out of bounds",
	BadOrdering:            "bad record ordering",
	BadMutation:            "bad mutation",
	BadPopulationModel:     "bad population model",
	UnsupportedOperation:   "unsupported operation",
	Overflow:               "overflow",
}

func (k Kind) String() string {
	if int(k) < len(messages) {
		return messages[k]
	}
	return "unknown error"
}

// Error is the error type returned by the operations of this package and
// of treeseq/persist. It
// carries a Kind so callers can branch on failure category with
// errors.Is, the same way net.OpError/os.PathError expose a stable,
// inspectable shape instead of raw string matching.
type Error struct {
	Kind Kind
	// Op names the failing operation, e.g. "RecordStore.GetRecord".
	Op string
	// Err, if set, is the underlying cause (e.g. a short read).
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a *Error with the same Kind, so
// errors.Is(err, &Error{Kind: OutOfBounds}) matches any OutOfBounds error.
// Kind is not itself an error; HasKind below is the shorter form.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newErr(op string, kind Kind, cause error) error {
	return &Error{Op: op, Kind: kind, Err: cause}
}

// NewError constructs an *Error for use by treeseq/persist, which needs
// the same Kind-tagged shape but lives outside this package.
func NewError(op string, kind Kind, cause error) error {
	return newErr(op, kind, cause)
}

// HasKind reports whether err is (or wraps) a *Error of the given kind.
func HasKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if ae, ok := err.(*Error); ok {
			e = ae
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if e == nil {
		return false
	}
	return e.Kind == kind
}
