package domain

import (
	"fmt"
	"strings"
	"time"
)

// Status is the candidate lifecycle state.
type Status string

const (
	StatusNew         Status = "new"
	StatusShortlisted Status = "shortlisted"
	StatusRejected    Status = "rejected"
)

// ParseStatus validates a status string against the lifecycle enum.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNew, StatusShortlisted, StatusRejected:
		return Status(s), nil
	default:
		return "", fmt.Errorf("status %q: %w", s, ErrInvalidStatus)
	}
}

// Candidate is an applicant record. The ID is assigned once at creation and
// never changes; Status starts at "new" and transitions only through an
// explicit update.
type Candidate struct {
	ID             string
	Name           string
	Email          string
	LinkedinURL    string
	Skills         []string
	Experience     string
	Education      string
	ResumeText     string
	AISummary      string
	RelevanceScore int
	MissingSkills  []string
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EmbeddingText composes the text the candidate vector is derived from.
// Field set and ordering are fixed so vectors stay comparable within the
// candidates namespace.
func (c *Candidate) EmbeddingText() string {
	return strings.Join([]string{
		c.Name,
		strings.Join(c.Skills, " "),
		c.Experience,
		c.Education,
		c.ResumeText,
	}, " ")
}

// Match is a search hit: a stored candidate plus the normalized similarity
// of its vector to the query, as a rounded percentage in [0,100].
type Match struct {
	Candidate  Candidate
	MatchScore int
}
