package nistir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usnistgov/NED/pkg/nistir"
)

// testLabels is a small prefix-closed UNIFORMAT II subset.
func testLabels() map[string]string {
	return map[string]string{
		"A":        "Substructure",
		"A.10":     "Foundations",
		"A.10.1":   "Standard Foundations",
		"A.10.1.1": "Wall Foundations",
		"B":        "Shell",
		"B.20":     "Exterior Enclosure",
		"B.20.1":   "Exterior Walls",
		"B.20.1.1": "Exterior Wall Construction",
		"D":        "Services",
		"D.30":     "HVAC",
		"D.30.3":   "Cooling Generating Systems",
		"D.30.3.2": "Direct Expansion Systems",
	}
}

func newRegistry(t *testing.T) *nistir.Registry {
	t.Helper()
	reg, err := nistir.New(testLabels())
	require.NoError(t, err, "closed label map should build a registry")
	return reg
}

// TestNew_EmptyMap verifies an empty label map is rejected.
func TestNew_EmptyMap(t *testing.T) {
	_, err := nistir.New(map[string]string{})
	assert.Error(t, err, "empty label map should be rejected")
}

// TestNew_ClosureViolation verifies a map with a missing ancestor
// is rejected with a ClosureError.
func TestNew_ClosureViolation(t *testing.T) {
	labels := testLabels()
	delete(labels, "D.30.3")

	_, err := nistir.New(labels)
	require.Error(t, err, "missing ancestor should be rejected")

	var clErr *nistir.ClosureError
	require.ErrorAs(t, err, &clErr)
	assert.Equal(t, "D.30.3", clErr.MissingAncestor)
}

// TestValidate_Known verifies valid identifiers pass, including ones
// with extra trailing segments.
func TestValidate_Known(t *testing.T) {
	reg := newRegistry(t)

	valid := []string{
		"A.10.1.1",
		"B.20.1.1",
		"B.20.1.1.A",
		"B.20.1.1.A.B",
		"D.30.3.2",
	}
	for _, id := range valid {
		assert.NoError(t, reg.Validate(id), "id %q should validate", id)
	}
}

// TestValidate_FailureKinds verifies the walk reports the first level
// at which an identifier fails.
func TestValidate_FailureKinds(t *testing.T) {
	reg := newRegistry(t)

	tests := []struct {
		id   string
		kind nistir.FailureKind
	}{
		{"A.10.1", nistir.TooShort},
		{"", nistir.TooShort},
		{"Z.10.1.1", nistir.UnknownMajorGroup},
		{"A.99.1.1", nistir.UnknownGroup},
		{"A.10.9.1", nistir.UnknownElement},
		{"A.10.1.9", nistir.UnknownSubelement},
	}

	for _, tt := range tests {
		err := reg.Validate(tt.id)
		require.Error(t, err, "id %q should fail", tt.id)

		var vErr *nistir.ValidationError
		require.ErrorAs(t, err, &vErr, "id %q", tt.id)
		assert.Equal(t, tt.kind, vErr.Kind, "id %q", tt.id)
	}
}

// TestValidate_Deterministic verifies the same identifier always
// fails at the same level.
func TestValidate_Deterministic(t *testing.T) {
	reg := newRegistry(t)

	for range 10 {
		err := reg.Validate("A.99.9.9")
		var vErr *nistir.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, nistir.UnknownGroup, vErr.Kind)
		assert.Equal(t, "99", vErr.Segment)
	}
}

// TestCompactID verifies dotted identifiers convert to their compact
// storage form.
func TestCompactID(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"A.10.1.1", "A1011"},
		{"B.20.1.1", "B2011"},
		{"B.20.1.1.A", "B2011.A"},
		{"B.20.1.1.A.B", "B2011.A.B"},
		{"D.30.3.2", "D3032"},
		{"D.30.3.2.B", "D3032.B"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, nistir.CompactID(tt.id), "id %q", tt.id)
	}
}

// TestHierarchyLabels verifies the four denormalized labels.
func TestHierarchyLabels(t *testing.T) {
	reg := newRegistry(t)

	labels := reg.HierarchyLabels("D.30.3.2")
	assert.Equal(t, "D - Services", labels.MajorGroup)
	assert.Equal(t, "30 - HVAC", labels.Group)
	assert.Equal(t, "3 - Cooling Generating Systems", labels.Element)
	assert.Equal(t, "2 - Direct Expansion Systems", labels.Subelement)
}

// TestHierarchyLabels_ExtraSegments verifies trailing segments do not
// change the derived labels.
func TestHierarchyLabels_ExtraSegments(t *testing.T) {
	reg := newRegistry(t)

	labels := reg.HierarchyLabels("B.20.1.1.A")
	assert.Equal(t, "B - Shell", labels.MajorGroup)
	assert.Equal(t, "20 - Exterior Enclosure", labels.Group)
	assert.Equal(t, "1 - Exterior Walls", labels.Element)
	assert.Equal(t, "1 - Exterior Wall Construction", labels.Subelement)
}

// TestLabel verifies lookups at every depth.
func TestLabel(t *testing.T) {
	reg := newRegistry(t)

	name, ok := reg.Label("D.30")
	assert.True(t, ok)
	assert.Equal(t, "HVAC", name)

	_, ok = reg.Label("Z")
	assert.False(t, ok, "unknown key should not resolve")
}

// TestLen verifies the registry reports the label map size.
func TestLen(t *testing.T) {
	reg := newRegistry(t)
	assert.Equal(t, len(testLabels()), reg.Len())
}
