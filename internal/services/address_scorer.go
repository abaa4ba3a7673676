package services

import (
	"parcel-tracking-service/internal/domain"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const componentPoints = 20

var streetKeywords = map[string]struct{}{
	"street": {},
	"road":   {},
	"avenue": {},
	"lane":   {},
	"st":     {},
	"rd":     {},
	"nagar":  {},
	"colony": {},
	"sector": {},
}

var (
	digitRun      = regexp.MustCompile(`\d+`)
	pincodeFormat = regexp.MustCompile(`^\d{6}$`)
	streetPhrase  = regexp.MustCompile(`(?i)(?:[a-z]+\s+)+(?:street|road|avenue|lane|st|rd|nagar|colony|sector)\b`)
)

var suggestions = map[string]string{
	domain.IssueStreet:         "Add a street name with a keyword such as Road, Street, Nagar or Sector",
	domain.IssueBuildingNumber: "Include a house, flat or building number",
	domain.IssueCity:           "Specify the city",
	domain.IssueState:          "Specify the state",
	domain.IssuePincode:        "Enter a valid 6-digit PIN code",
}

// ScoreAddress parses a free-text address with optional structured hints
// and rates its completeness. Each of the five components is worth 20
// points. It never fails: an empty input scores 0 with every issue listed.
func ScoreAddress(in domain.AddressInput) domain.ScoredAddress {
	raw := strings.TrimSpace(norm.NFKC.String(in.Raw))
	city := strings.TrimSpace(in.City)
	state := strings.TrimSpace(in.State)
	pincode := strings.TrimSpace(in.Pincode)

	addr := domain.Address{
		Raw:            raw,
		BuildingNumber: domain.NotDetected,
		Street:         extractStreet(raw),
		City:           orNotDetected(city),
		State:          orNotDetected(state),
		Pincode:        domain.NotDetected,
	}

	var assessment domain.ConfidenceAssessment
	check := func(ok bool, issue string) {
		if ok {
			assessment.Score += componentPoints
			return
		}
		assessment.Issues = append(assessment.Issues, issue)
		assessment.Suggestions = append(assessment.Suggestions, suggestions[issue])
	}

	check(hasStreetKeyword(raw), domain.IssueStreet)

	building := digitRun.FindString(raw)
	if building != "" {
		addr.BuildingNumber = building
	}
	check(building != "", domain.IssueBuildingNumber)

	check(city != "", domain.IssueCity)
	check(state != "", domain.IssueState)

	validPin := pincodeFormat.MatchString(pincode)
	if validPin {
		addr.Pincode = pincode
	}
	check(validPin, domain.IssuePincode)

	assessment.Level = domain.LevelForScore(assessment.Score)
	addr.Standardized = standardize(addr)

	return domain.ScoredAddress{Address: addr, Assessment: assessment}
}

func hasStreetKeyword(raw string) bool {
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, tok := range tokens {
		if _, ok := streetKeywords[strings.ToLower(tok)]; ok {
			return true
		}
	}
	return false
}

// extractStreet prefers "<words> <keyword>", then the text before the first
// comma.
func extractStreet(raw string) string {
	if m := streetPhrase.FindString(raw); m != "" {
		return strings.TrimSpace(m)
	}

	head, _, _ := strings.Cut(raw, ",")
	return orNotDetected(strings.TrimSpace(head))
}

func standardize(a domain.Address) string {
	parts := make([]string, 0, 4)
	for _, c := range []string{a.BuildingNumber, a.Street, a.City, a.State} {
		if a.Has(c) {
			parts = append(parts, c)
		}
	}

	out := strings.Join(parts, ", ")
	if a.Has(a.Pincode) {
		if out == "" {
			return a.Pincode
		}
		out += " - " + a.Pincode
	}
	return orNotDetected(out)
}

func orNotDetected(s string) string {
	if s == "" {
		return domain.NotDetected
	}
	return s
}
