package ned_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/usnistgov/NED/pkg/ned"
)

// TestReport_TotalFailed verifies failure counts sum across kinds.
func TestReport_TotalFailed(t *testing.T) {
	var rep ned.Report
	assert.Zero(t, rep.TotalFailed())

	rep.Add(ned.KindSummary{Kind: "reference", Created: 3})
	rep.Add(ned.KindSummary{
		Kind:   "component",
		Failed: 2,
		Failures: []ned.RecordFailure{
			{NaturalKey: "Z.10.1.1", Reason: "unknown major group"},
			{NaturalKey: "A.10", Reason: "too short"},
		},
	})
	rep.Add(ned.KindSummary{Kind: "experiment", Skipped: true})
	rep.Add(ned.KindSummary{Kind: "fragility curve", Failed: 1})

	assert.Equal(t, 3, rep.TotalFailed())
	assert.Len(t, rep.Kinds, 4)
}
