package candidate

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/roshan-Kawale/AI-Resume-Parser/internal/domain"
)

// Hash field names. fieldVector is excluded from query RETURN lists: search
// hits carry metadata only, never the raw blob.
const (
	fieldName       = "name"
	fieldEmail      = "email"
	fieldLinkedin   = "linkedin_url"
	fieldSkills     = "skills"
	fieldExperience = "experience"
	fieldEducation  = "education"
	fieldResumeText = "resume_text"
	fieldAISummary  = "ai_summary"
	fieldRelevance  = "relevance_score"
	fieldMissing    = "missing_skills"
	fieldStatus     = "status"
	fieldCreatedAt  = "created_at"
	fieldUpdatedAt  = "updated_at"
	fieldVector     = "__vector"
)

const listSeparator = ", "

func docKey(id string) string {
	return keyPrefix() + id
}

func keyPrefix() string {
	return fmt.Sprintf("%s%s:", domain.KeyPrefix, namespace)
}

func indexName() string {
	return fmt.Sprintf("%s%s:idx", domain.KeyPrefix, namespace)
}

func idFromKey(key string) string {
	return strings.TrimPrefix(key, keyPrefix())
}

func returnFields() []string {
	return []string{
		fieldName, fieldEmail, fieldLinkedin, fieldSkills, fieldExperience,
		fieldEducation, fieldResumeText, fieldAISummary, fieldRelevance,
		fieldMissing, fieldStatus, fieldCreatedAt, fieldUpdatedAt,
		"__vector_score",
	}
}

// candidateToFields flattens a Candidate into hash fields, truncating the
// resume text to the metadata prefix bound.
func candidateToFields(c *domain.Candidate, textLimit int) map[string]string {
	resume := truncateText(c.ResumeText, textLimit)

	return map[string]string{
		fieldName:       c.Name,
		fieldEmail:      c.Email,
		fieldLinkedin:   c.LinkedinURL,
		fieldSkills:     strings.Join(c.Skills, listSeparator),
		fieldExperience: c.Experience,
		fieldEducation:  c.Education,
		fieldResumeText: resume,
		fieldAISummary:  c.AISummary,
		fieldRelevance:  strconv.Itoa(c.RelevanceScore),
		fieldMissing:    strings.Join(c.MissingSkills, listSeparator),
		fieldStatus:     string(c.Status),
		fieldCreatedAt:  strconv.FormatInt(c.CreatedAt.UnixMilli(), 10),
		fieldUpdatedAt:  strconv.FormatInt(unixMilliOrZero(c.UpdatedAt), 10),
	}
}

// candidateFromFields hydrates a Candidate from hash fields.
func candidateFromFields(id string, m map[string]string) domain.Candidate {
	relevance, _ := strconv.Atoi(m[fieldRelevance])

	return domain.Candidate{
		ID:             id,
		Name:           m[fieldName],
		Email:          m[fieldEmail],
		LinkedinURL:    m[fieldLinkedin],
		Skills:         splitList(m[fieldSkills]),
		Experience:     m[fieldExperience],
		Education:      m[fieldEducation],
		ResumeText:     m[fieldResumeText],
		AISummary:      m[fieldAISummary],
		RelevanceScore: relevance,
		MissingSkills:  splitList(m[fieldMissing]),
		Status:         domain.Status(m[fieldStatus]),
		CreatedAt:      timeFromMillis(m[fieldCreatedAt]),
		UpdatedAt:      timeFromMillis(m[fieldUpdatedAt]),
	}
}

// truncateText cuts s to at most limit bytes without splitting a multi-byte
// rune: the stored prefix must stay valid UTF-8.
func truncateText(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func timeFromMillis(s string) time.Time {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil || ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

func unixMilliOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float,
// little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
