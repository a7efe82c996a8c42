package nistir

import (
	"strings"
)

// CompactID converts a dotted taxonomy identifier into its compact
// storage form: the first four segments concatenated without
// separators, with any remaining segments preserved as a dotted
// suffix.
//
//	"A.10.1.1"      -> "A1011"
//	"B.20.1.1.A"    -> "B2011.A"
//	"B.20.1.1.A.B"  -> "B2011.A.B"
//
// The function is pure and does not consult the registry; callers are
// expected to run Validate first.
func CompactID(id string) string {
	parts := strings.Split(id, ".")
	if len(parts) <= 4 {
		return strings.Join(parts, "")
	}
	base := strings.Join(parts[:4], "")
	return base + "." + strings.Join(parts[4:], ".")
}

// Labels holds the denormalized hierarchy names for a component, one
// per classification level. A field is left empty when the registry has
// no entry for the corresponding prefix.
type Labels struct {
	MajorGroup string
	Group      string
	Element    string
	Subelement string
}

// HierarchyLabels derives the four denormalized hierarchy labels for a
// dotted identifier. Each label has the form
// "<last prefix segment> - <registry name>", e.g. "D - Services" or
// "30 - HVAC". An absent prefix leaves the label unset; that is not a
// validation failure since Validate already vouched for the first four
// segments.
func (r *Registry) HierarchyLabels(id string) Labels {
	var res Labels
	parts := strings.Split(id, ".")

	dst := []*string{&res.MajorGroup, &res.Group, &res.Element, &res.Subelement}
	for i := 0; i < 4 && i < len(parts); i++ {
		key := strings.Join(parts[:i+1], ".")
		if name, ok := r.labels[key]; ok {
			*dst[i] = parts[i] + " - " + name
		}
	}

	return res
}
