package domain

import (
	"fmt"
	"strings"
)

// Record is a profile read from the source-of-truth store. The search core
// never writes records back; it only derives embeddings and index documents
// from them. Empty string / zero values mean the field is absent.
type Record struct {
	ID                  string
	Name                string
	Bio                 string
	Designation         string
	Company             string
	Location            string
	Skills              string
	YearsOfExperience   int
	CohortNumber        int
	IsStudent           bool
	WorkingProfessional bool
	StudyStream         string
	ExpectedOutcomes    string
	Track               string
	Founder             bool
	FounderDetails      string
	CodeType            string
	CurrentIndustry     string
	Domain              string
	TargetIndustries    string
	IndustryInterest    string
	InterestAreas       string
	OpenToWork          bool
	House               string
}

// Content renders the record as "Label: value" lines joined by newlines,
// skipping absent fields. This is the canonical text blob used for the
// full-text embedding and for keyword indexing.
func (r *Record) Content() string {
	pairs := []struct {
		label string
		value string
	}{
		{"Name", r.Name},
		{"Bio", r.Bio},
		{"Designation", r.Designation},
		{"Company", r.Company},
		{"Location", r.Location},
		{"Skills", r.Skills},
		{"Years of Experience", positiveInt(r.YearsOfExperience)},
		{"Cohort Number", positiveInt(r.CohortNumber)},
		{"Is Student", trueOnly(r.IsStudent)},
		{"Working Professional", trueOnly(r.WorkingProfessional)},
		{"Study Stream", r.StudyStream},
		{"Expected Outcomes", r.ExpectedOutcomes},
		{"Track", r.Track},
		{"Founder", trueOnly(r.Founder)},
		{"Founder Details", r.FounderDetails},
		{"Code Type", r.CodeType},
		{"Current Industry", r.CurrentIndustry},
		{"Domain", r.Domain},
		{"Target Industries", r.TargetIndustries},
		{"Industry Interest", r.IndustryInterest},
		{"Interest Areas", r.InterestAreas},
		{"Open to Work", trueOnly(r.OpenToWork)},
		{"House", r.House},
	}

	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if strings.TrimSpace(p.value) == "" {
			continue
		}
		lines = append(lines, p.label+": "+p.value)
	}
	return strings.Join(lines, "\n")
}

// ExperienceText returns the phrase embedded for the experience field, or ""
// when years of experience is absent.
func (r *Record) ExperienceText() string {
	if r.YearsOfExperience <= 0 {
		return ""
	}
	return fmt.Sprintf("%d years of experience", r.YearsOfExperience)
}

// IndexDocument builds the keyword-index mirror of the record. content is the
// canonical blob from Content(), passed in so callers embed and index the
// same text.
func (r *Record) IndexDocument(content string) IndexDocument {
	return IndexDocument{
		ID:                r.ID,
		Name:              r.Name,
		Bio:               r.Bio,
		Skills:            r.Skills,
		YearsOfExperience: r.YearsOfExperience,
		Location:          r.Location,
		TargetIndustries:  r.TargetIndustries,
		Designation:       r.Designation,
		House:             r.House,
		CohortNumber:      r.CohortNumber,
		FullTextContent:   content,
	}
}

// IndexDocument is the structured document mirrored into the full-text index,
// keyed by the record ID.
type IndexDocument struct {
	ID                string `json:"id"`
	Name              string `json:"name,omitempty"`
	Bio               string `json:"bio,omitempty"`
	Skills            string `json:"skills,omitempty"`
	YearsOfExperience int    `json:"years_of_experience,omitempty"`
	Location          string `json:"location,omitempty"`
	TargetIndustries  string `json:"target_industries,omitempty"`
	Designation       string `json:"designation,omitempty"`
	House             string `json:"house,omitempty"`
	CohortNumber      int    `json:"cohort_number,omitempty"`
	FullTextContent   string `json:"full_text_content"`
}

// NormalizeText replaces newlines with spaces. Embedding models are sensitive
// to literal newlines; normalizing measurably improves similarity quality.
func NormalizeText(text string) string {
	return strings.ReplaceAll(text, "\n", " ")
}

func positiveInt(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}

func trueOnly(b bool) string {
	if !b {
		return ""
	}
	return "true"
}
