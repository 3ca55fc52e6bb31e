package domain

import (
	"strings"
	"time"
)

// JobDescription is a job posting. Immutable after creation.
type JobDescription struct {
	ID             string
	Title          string
	Description    string
	RequiredSkills []string
	Experience     string
	Education      string
	CreatedAt      time.Time
}

// EmbeddingText composes the text the job vector is derived from, with the
// same fixed field ordering guarantee as Candidate.EmbeddingText.
func (j *JobDescription) EmbeddingText() string {
	return strings.Join([]string{
		j.Title,
		j.Description,
		strings.Join(j.RequiredSkills, " "),
		j.Experience,
		j.Education,
	}, " ")
}
