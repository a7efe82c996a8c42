package schema

// Vocabularies for the constrained string fields of the catalog.
// Ingestion treats an out-of-vocabulary value as a record-level
// failure; empty values are allowed for optional fields.

// Study types of a Reference.
const (
	StudyTypeExperiment = "Experiment"
	StudyTypeRecon      = "Historical Event"
	StudyTypeAnalytical = "Analytical Study"
	StudyTypeLitReview  = "Lit Review"
	StudyTypeOther      = "Other"
)

// StudyTypes lists the allowed study_type values. StudyTypeOther is
// the default when a canonical record omits the field.
var StudyTypes = []string{
	StudyTypeExperiment,
	StudyTypeRecon,
	StudyTypeAnalytical,
	StudyTypeLitReview,
	StudyTypeOther,
}

// TestTypes lists the allowed test_type values of an Experiment.
var TestTypes = []string{
	"Dynamic, uniaxial",
	"Dynamic, bi-directional",
	"Dynamic, 3D",
	"Monotonic, compression",
	"Monotonic, tension",
	"Monotonic, bending",
	"Quasi-static Cyclic, uniaxial",
	"Quasi-static Cyclic, bi-directional",
}

// EdpMetrics lists the allowed engineering demand parameter metrics.
var EdpMetrics = []string{
	"Story Drift Ratio",
	"Story Drift Ratio, bi-directional",
	"Peak Floor Acceleration, horizontal",
	"Peak Table Acceleration, horizontal",
	"Peak Floor Acceleration, vertical",
	"Peak Floor Velocity",
	"Joint Rotation",
	"Force, tension",
	"Force, compression",
	"Force, bending",
	"Force, lateral",
	"Custom",
}

// EdpUnits lists the allowed engineering demand parameter units.
var EdpUnits = []string{
	"g",
	"Ratio",
	"Radians",
	"Kips",
	"k-in",
	"Meters Per Second",
	"Custom",
}

// DsClasses lists the allowed damage state classes of an Experiment.
var DsClasses = []string{
	"No damage",
	"Inconsequential",
	"Consequential",
	"Unknown",
}

// CurveBases lists the allowed basis values of a FragilityCurve.
var CurveBases = []string{
	StudyTypeExperiment,
	StudyTypeRecon,
	StudyTypeAnalytical,
	StudyTypeLitReview,
	StudyTypeOther,
}

func inVocab(vocab []string, val string) bool {
	for _, v := range vocab {
		if v == val {
			return true
		}
	}
	return false
}

// ValidStudyType reports whether val is an allowed study type.
func ValidStudyType(val string) bool { return inVocab(StudyTypes, val) }

// ValidTestType reports whether val is an allowed test type.
func ValidTestType(val string) bool { return inVocab(TestTypes, val) }

// ValidEdpMetric reports whether val is an allowed EDP metric.
// The empty string is allowed, the field being optional.
func ValidEdpMetric(val string) bool {
	return val == "" || inVocab(EdpMetrics, val)
}

// ValidEdpUnit reports whether val is an allowed EDP unit.
// The empty string is allowed, the field being optional.
func ValidEdpUnit(val string) bool {
	return val == "" || inVocab(EdpUnits, val)
}

// ValidDsClass reports whether val is an allowed damage state class.
// The empty string is allowed, the field being optional.
func ValidDsClass(val string) bool {
	return val == "" || inVocab(DsClasses, val)
}

// ValidCurveBasis reports whether val is an allowed curve basis.
// The empty string is allowed, the field being optional.
func ValidCurveBasis(val string) bool {
	return val == "" || inVocab(CurveBases, val)
}
