package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// DiagnosisFields is the best-effort structured view over a free-text
// diagnosis. Every field has a documented fallback; absence of a match is
// expected, not an error.
type DiagnosisFields struct {
	DiseaseName   string
	Confidence    *int
	Severity      string
	AffectedArea  string
	TreatmentType string
	EstimatedCost *float64
	EstimatedTime string
}

var (
	diseaseRe   = regexp.MustCompile(`(?i)disease[:\s]+([^\n]+)`)
	confidentRe = regexp.MustCompile(`(?i)confidence[:\s]+(\d+)%`)
	severityRe  = regexp.MustCompile(`(?i)severity[:\s]+(low|medium|high|critical)`)
	areaRe      = regexp.MustCompile(`(?i)affected[:\s]+(leaves|stems|roots|fruits|flowers|whole-plant)`)
	treatmentRe = regexp.MustCompile(`(?i)treatment[:\s]+(organic|chemical|biological|cultural|mixed)`)
	remedyRe    = regexp.MustCompile(`(?is)treatment options?\**[:\s]+(.+?)(?:\n\s*(?:\d+\.|\*\*)|\z)`)
	costRe      = regexp.MustCompile(`(?i)estimated cost[^0-9\n]*([0-9]+(?:\.[0-9]+)?)`)
	timeRe      = regexp.MustCompile(`(?i)(?:estimated|recovery|treatment) time[:\s*]+([^\n]+)`)
)

// ExtractDiagnosisFields scans model output for the structured fields the
// diagnosis record stores. It never fails: unmatched fields keep their
// fallback values ("Unknown", nil, "medium", "unknown", "organic"); cost
// and time stay nil/empty when the model gave no figure.
func ExtractDiagnosisFields(text string) DiagnosisFields {
	fields := DiagnosisFields{
		DiseaseName:   "Unknown",
		Confidence:    nil,
		Severity:      "medium",
		AffectedArea:  "unknown",
		TreatmentType: "organic",
	}

	if m := diseaseRe.FindStringSubmatch(text); m != nil {
		fields.DiseaseName = strings.TrimSpace(m[1])
	}
	if m := confidentRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil && v >= 0 && v <= 100 {
			fields.Confidence = &v
		}
	}
	if m := severityRe.FindStringSubmatch(text); m != nil {
		fields.Severity = strings.ToLower(m[1])
	}
	if m := areaRe.FindStringSubmatch(text); m != nil {
		fields.AffectedArea = strings.ToLower(m[1])
	}
	if m := treatmentRe.FindStringSubmatch(text); m != nil {
		fields.TreatmentType = strings.ToLower(m[1])
	}
	if m := costRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			fields.EstimatedCost = &v
		}
	}
	if m := timeRe.FindStringSubmatch(text); m != nil {
		fields.EstimatedTime = strings.TrimSpace(m[1])
	}
	return fields
}

// ExtractRemedy pulls the treatment-options section out of the diagnosis
// text, or returns "" when the model did not produce one.
func ExtractRemedy(text string) string {
	if m := remedyRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
