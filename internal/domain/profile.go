package domain

import "context"

// Profile holds the structured fields extracted from raw resume text.
type Profile struct {
	Skills     []string
	Experience string
	Education  string
}

// Evaluation is a narrative assessment of a candidate, optionally relative
// to a job description. Without a job description RelevanceScore reflects
// general profile strength rather than a match score.
type Evaluation struct {
	Summary        string
	RelevanceScore int
	MissingSkills  []string
}

// Enricher is the text-generation contract: structured extraction and
// narrative summarization over the same provider.
type Enricher interface {
	ExtractProfile(ctx context.Context, resumeText string) (Profile, error)
	Summarize(ctx context.Context, c Candidate, jobDescription string) (Evaluation, error)
}

// FallbackProfile is returned whenever extraction output is uninterpretable,
// so an apply request never fails solely because of enrichment.
func FallbackProfile() Profile {
	return Profile{
		Skills:     []string{},
		Experience: "Unable to extract experience at this time",
		Education:  "Unable to extract education at this time",
	}
}

// FallbackEvaluation is the summarization counterpart of FallbackProfile.
func FallbackEvaluation() Evaluation {
	return Evaluation{
		Summary:        "Unable to generate summary at this time",
		RelevanceScore: 0,
		MissingSkills:  []string{},
	}
}
