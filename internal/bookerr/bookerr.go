// Package bookerr defines the failure kinds reported while assembling a book.
//
// Every kind maps onto a distinct process exit code so scripts can tell a
// missing chapter from a malformed descriptor.
package bookerr

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/blackwell-systems/gen-epub-book/internal/util"
)

// Kind enumerates the failure categories.
type Kind int

const (
	Io Kind = iota + 1
	Parse
	FileNotFound
	WrongFileState
	WrongElementAmount
	RequiredElementMissing
)

func (k Kind) String() string {
	switch k {
	case Io:
		return "Io"
	case Parse:
		return "Parse"
	case FileNotFound:
		return "FileNotFound"
	case WrongFileState:
		return "WrongFileState"
	case WrongElementAmount:
		return "WrongElementAmount"
	case RequiredElementMissing:
		return "RequiredElementMissing"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ExitCode is the process exit value for the kind.
func (k Kind) ExitCode() int { return int(k) }

// Error is a book assembly failure. Which fields are meaningful depends on Kind.
type Error struct {
	Kind Kind

	// Io: Desc names the stream, Op the imperative verb ("open", "write").
	// Parse: Desc is what failed to parse, Where where it was headed.
	Desc  string
	Op    string
	Where string
	More  string

	// FileNotFound: Who requested Path. WrongFileState: Path is not What.
	Who  string
	What string
	Path string

	// WrongElementAmount.
	Element  string
	Actual   int
	Relation string
	Bound    int

	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case Io:
		op := strings.TrimSuffix(e.Op, "e")
		return withMore(fmt.Sprintf("%sing %s failed", util.UppercaseFirst(op), e.Desc), e.More)
	case Parse:
		return withMore(fmt.Sprintf("Failed to parse %s for %s", e.Desc, e.Where), e.More)
	case FileNotFound:
		return fmt.Sprintf("File %s for %s not found", e.Path, e.Who)
	case WrongFileState:
		return fmt.Sprintf("File %s is not %s", e.Path, e.What)
	case WrongElementAmount:
		return fmt.Sprintf("Wrong amount of %s elements: %d, must be %s %d", e.Element, e.Actual, e.Relation, e.Bound)
	case RequiredElementMissing:
		return fmt.Sprintf("Required element %s not specified", e.Element)
	default:
		return "unknown book error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

func withMore(msg, more string) string {
	if more == "" {
		return msg
	}
	return msg + ": " + more
}

// NewIO reports a failed operation on a named stream.
func NewIO(desc, op, more string, cause error) *Error {
	return &Error{Kind: Io, Desc: desc, Op: op, More: more, Err: cause}
}

// NewParse reports something that could not be parsed.
func NewParse(what, where, more string) *Error {
	return &Error{Kind: Parse, Desc: what, Where: where, More: more}
}

// NewFileNotFound reports a file missing from every include directory.
func NewFileNotFound(who, path string) *Error {
	return &Error{Kind: FileNotFound, Who: who, Path: path}
}

// NewWrongFileState reports a path that exists but is the wrong kind of thing.
func NewWrongFileState(what, path string) *Error {
	return &Error{Kind: WrongFileState, What: what, Path: path}
}

// NewWrongElementAmount reports a violated cardinality group.
func NewWrongElementAmount(element string, actual int, relation string, bound int) *Error {
	return &Error{Kind: WrongElementAmount, Element: element, Actual: actual, Relation: relation, Bound: bound}
}

// NewRequiredElementMissing reports a mandatory element absent at finalize time.
func NewRequiredElementMissing(element string) *Error {
	return &Error{Kind: RequiredElementMissing, Element: element}
}

// ExitCode maps err to the process exit value: the kind's code for book
// errors, 1 for anything else, 0 for nil.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var be *Error
	if errors.As(err, &be) {
		return be.Kind.ExitCode()
	}
	return 1
}

// Print writes the human-readable message for err followed by ".\n".
func Print(w io.Writer, err error) {
	fmt.Fprintf(w, "%s.\n", err)
}
