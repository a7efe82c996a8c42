// Package nistir implements the NISTIR 6389 (UNIFORMAT II) component
// taxonomy: a four-level classification tree addressed by dotted
// identifiers such as "B.20.1.1". The levels are major group, group,
// element, and subelement. Identifiers may carry extra trailing
// segments ("B.20.1.1.A") that distinguish components below the
// subelement level; those are ignored by validation but preserved by
// identifier derivation.
//
// The package is pure: a Registry is built once from a flat
// dotted-key → label map and never mutated. There is no package-level
// cache; callers construct a Registry (normally via internal/ioregistry)
// and inject it where needed.
package nistir

import (
	"fmt"
	"strings"
)

// Levels of the classification tree, in walk order.
const (
	LevelMajorGroup = iota + 1
	LevelGroup
	LevelElement
	LevelSubelement
)

// Registry holds the classification tree and the flat label map it was
// built from. The nested tree is derived from the map's four-segment
// keys, so the two views can never drift apart.
type Registry struct {
	labels map[string]string
	tree   map[string]map[string]map[string]map[string]struct{}
}

// New builds a Registry from a flat label map.
//
// The map must be closed under prefixes: for every key with N dotted
// segments, all shorter dotted prefixes must also be keys. A violation
// is a configuration error in the registry's source data, so New
// rejects it instead of deferring to per-identifier validation.
func New(labels map[string]string) (*Registry, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("empty label map")
	}

	if err := checkClosure(labels); err != nil {
		return nil, err
	}

	res := &Registry{
		labels: labels,
		tree:   make(map[string]map[string]map[string]map[string]struct{}),
	}

	for key := range labels {
		parts := strings.Split(key, ".")
		if len(parts) != 4 {
			continue
		}
		mg, ok := res.tree[parts[0]]
		if !ok {
			mg = make(map[string]map[string]map[string]struct{})
			res.tree[parts[0]] = mg
		}
		grp, ok := mg[parts[1]]
		if !ok {
			grp = make(map[string]map[string]struct{})
			mg[parts[1]] = grp
		}
		el, ok := grp[parts[2]]
		if !ok {
			el = make(map[string]struct{})
			grp[parts[2]] = el
		}
		el[parts[3]] = struct{}{}
	}

	return res, nil
}

// Validate checks that the first four segments of a dotted identifier
// exist in the classification tree. Trailing segments beyond the fourth
// are ignored. On failure the returned error is a *ValidationError
// whose Kind names the first level at which the walk failed.
func (r *Registry) Validate(id string) error {
	parts := strings.Split(id, ".")
	if len(parts) < 4 {
		return &ValidationError{ID: id, Kind: TooShort}
	}

	mg, ok := r.tree[parts[0]]
	if !ok {
		return &ValidationError{
			ID: id, Kind: UnknownMajorGroup, Segment: parts[0],
		}
	}
	grp, ok := mg[parts[1]]
	if !ok {
		return &ValidationError{
			ID: id, Kind: UnknownGroup, Segment: parts[1],
		}
	}
	el, ok := grp[parts[2]]
	if !ok {
		return &ValidationError{
			ID: id, Kind: UnknownElement, Segment: parts[2],
		}
	}
	if _, ok = el[parts[3]]; !ok {
		return &ValidationError{
			ID: id, Kind: UnknownSubelement, Segment: parts[3],
		}
	}

	return nil
}

// Label returns the human-readable name for a dotted key of any depth.
func (r *Registry) Label(key string) (string, bool) {
	res, ok := r.labels[key]
	return res, ok
}

// Len returns the number of entries in the label map.
func (r *Registry) Len() int {
	return len(r.labels)
}

// checkClosure verifies the prefix-closure invariant of the label map.
func checkClosure(labels map[string]string) error {
	for key := range labels {
		parts := strings.Split(key, ".")
		for i := len(parts) - 1; i > 0; i-- {
			ancestor := strings.Join(parts[:i], ".")
			if _, ok := labels[ancestor]; !ok {
				return &ClosureError{Key: key, MissingAncestor: ancestor}
			}
		}
	}
	return nil
}
