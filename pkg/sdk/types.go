package talentdex

// SearchRequest is the body for Search.
type SearchRequest struct {
	Query          string     `json:"query"`
	K              int        `json:"k,omitempty"`
	MatchThreshold float64    `json:"match_threshold,omitempty"`
	LLMConfig      *LLMConfig `json:"llm_config,omitempty"`
}

// LLMConfig turns model-based field weighting on for a search.
type LLMConfig struct {
	Enabled bool   `json:"enabled"`
	Model   string `json:"model,omitempty"`
}

// SearchResult is one ranked hit.
type SearchResult struct {
	ProfileID          string  `json:"profile_id"`
	SemanticSimilarity float64 `json:"semantic_similarity"`
	KeywordScore       float64 `json:"keyword_score"`
}

// Profile is the indexing payload for one person.
type Profile struct {
	ProfileID           string `json:"profile_id"`
	Name                string `json:"name,omitempty"`
	Bio                 string `json:"bio,omitempty"`
	Designation         string `json:"designation,omitempty"`
	Company             string `json:"company,omitempty"`
	Location            string `json:"location,omitempty"`
	Skills              string `json:"skills,omitempty"`
	YearsOfExperience   int    `json:"years_of_experience,omitempty"`
	CohortNumber        int    `json:"cohort_number,omitempty"`
	IsStudent           bool   `json:"is_student,omitempty"`
	WorkingProfessional bool   `json:"working_professional,omitempty"`
	StudyStream         string `json:"study_stream,omitempty"`
	ExpectedOutcomes    string `json:"expected_outcomes,omitempty"`
	Track               string `json:"track,omitempty"`
	Founder             bool   `json:"founder,omitempty"`
	FounderDetails      string `json:"founder_details,omitempty"`
	CodeType            string `json:"code_type,omitempty"`
	CurrentIndustry     string `json:"current_industry,omitempty"`
	Domain              string `json:"domain,omitempty"`
	TargetIndustries    string `json:"target_industries,omitempty"`
	IndustryInterest    string `json:"industry_interest,omitempty"`
	InterestAreas       string `json:"interest_areas,omitempty"`
	OpenToWork          bool   `json:"open_to_work,omitempty"`
	House               string `json:"house,omitempty"`
}

// IndexReport summarizes an indexing run.
type IndexReport struct {
	SuccessCount int      `json:"successCount"`
	ErrorCount   int      `json:"errorCount"`
	Errors       []string `json:"errors,omitempty"`
}
