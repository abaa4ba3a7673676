package domain

// NotDetected marks an address component the scorer could not find.
const NotDetected = "Not detected"

// AddressInput is the free-text address plus optional structured hints as
// entered on the booking form.
type AddressInput struct {
	Raw     string
	City    string
	State   string
	Pincode string
}

// Address is the parsed form of an AddressInput. Components that were not
// found hold NotDetected; Pincode is either six digits or NotDetected.
type Address struct {
	Raw            string
	BuildingNumber string
	Street         string
	City           string
	State          string
	Pincode        string
	Standardized   string
}

func (a Address) Has(component string) bool {
	return component != "" && component != NotDetected
}

type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "High"
	ConfidenceMedium ConfidenceLevel = "Medium"
	ConfidenceLow    ConfidenceLevel = "Low"
)

// LevelForScore buckets a 0-100 score.
func LevelForScore(score int) ConfidenceLevel {
	switch {
	case score >= 80:
		return ConfidenceHigh
	case score >= 60:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Address component names used as issue tags.
const (
	IssueStreet         = "street"
	IssueBuildingNumber = "buildingNumber"
	IssueCity           = "city"
	IssueState          = "state"
	IssuePincode        = "pincode"
)

// ConfidenceAssessment is the outcome of scoring one address. Suggestions
// is parallel to Issues.
type ConfidenceAssessment struct {
	Score       int
	Level       ConfidenceLevel
	Issues      []string
	Suggestions []string
}

// ScoredAddress pairs a parsed address with its assessment.
type ScoredAddress struct {
	Address    Address
	Assessment ConfidenceAssessment
}
