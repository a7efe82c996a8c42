package nistir

import (
	"fmt"
)

// FailureKind names the level at which a taxonomy identifier failed
// validation.
type FailureKind int

const (
	// TooShort means the identifier had fewer than four dotted segments.
	TooShort FailureKind = iota
	// UnknownMajorGroup means segment 0 is not a major group.
	UnknownMajorGroup
	// UnknownGroup means segment 1 is not a group of its major group.
	UnknownGroup
	// UnknownElement means segment 2 is not an element of its group.
	UnknownElement
	// UnknownSubelement means segment 3 is not a subelement of its element.
	UnknownSubelement
)

// String returns the name of the failure kind.
func (k FailureKind) String() string {
	switch k {
	case TooShort:
		return "TooShort"
	case UnknownMajorGroup:
		return "UnknownMajorGroup"
	case UnknownGroup:
		return "UnknownGroup"
	case UnknownElement:
		return "UnknownElement"
	case UnknownSubelement:
		return "UnknownSubelement"
	}
	return "Unknown"
}

// ValidationError reports why a dotted identifier was rejected.
type ValidationError struct {
	// ID is the identifier as given by the caller.
	ID string
	// Kind is the level at which the walk failed.
	Kind FailureKind
	// Segment is the offending segment, empty for TooShort.
	Segment string
}

func (e *ValidationError) Error() string {
	if e.Kind == TooShort {
		return fmt.Sprintf(
			"component ID %q must have at least 4 NISTIR levels (e.g., A.10.1.1)",
			e.ID,
		)
	}
	return fmt.Sprintf(
		"component ID %q: segment %q not found in taxonomy (%s)",
		e.ID, e.Segment, e.Kind,
	)
}

// ClosureError reports a prefix-closure violation in the registry's
// source data: a key is present while one of its ancestors is not.
type ClosureError struct {
	Key             string
	MissingAncestor string
}

func (e *ClosureError) Error() string {
	return fmt.Sprintf(
		"label map is not closed under prefixes: key %q has no ancestor %q",
		e.Key, e.MissingAncestor,
	)
}
