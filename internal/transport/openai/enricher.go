package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/roshan-Kawale/AI-Resume-Parser/internal/domain"
	"github.com/roshan-Kawale/AI-Resume-Parser/internal/metrics"
)

const (
	opExtractProfile = "extract_profile"
	opSummarize      = "summarize"
)

// Enricher produces structured profiles and narrative evaluations via chat
// completions. Failures degrade to documented defaults instead of
// propagating: a broken generation call must never fail an application or
// a whole search reply.
type Enricher struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewEnricher creates a chat-completion enricher.
func NewEnricher(cfg *Config) *Enricher {
	return &Enricher{
		client: newClient(cfg.APIKey, cfg.BaseURL),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// ExtractProfile derives skills/experience/education from raw resume text.
func (e *Enricher) ExtractProfile(ctx context.Context, resumeText string) (domain.Profile, error) {
	prompt := extractProfilePrompt(resumeText)

	raw, err := e.complete(ctx, prompt)
	if err != nil {
		e.fallback(opExtractProfile, "provider_error", err)
		return domain.FallbackProfile(), nil
	}

	var parsed struct {
		Skills     []string `json:"skills"`
		Experience string   `json:"experience"`
		Education  string   `json:"education"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &parsed); err != nil {
		e.fallback(opExtractProfile, "parse_error", err)
		return domain.FallbackProfile(), nil
	}
	if parsed.Skills == nil || parsed.Experience == "" || parsed.Education == "" {
		e.fallback(opExtractProfile, "parse_error", fmt.Errorf("missing keys in response"))
		return domain.FallbackProfile(), nil
	}

	metrics.EnrichmentRequestsTotal.WithLabelValues(opExtractProfile, "success").Inc()
	return domain.Profile{
		Skills:     parsed.Skills,
		Experience: parsed.Experience,
		Education:  parsed.Education,
	}, nil
}

// Summarize produces a narrative evaluation of the candidate, optionally
// relative to a job description. Without one, the relevance score reflects
// general profile strength.
func (e *Enricher) Summarize(
	ctx context.Context, c domain.Candidate, jobDescription string,
) (domain.Evaluation, error) {
	prompt := summarizePrompt(&c, jobDescription)

	raw, err := e.complete(ctx, prompt)
	if err != nil {
		e.fallback(opSummarize, "provider_error", err)
		return domain.FallbackEvaluation(), nil
	}

	var parsed struct {
		Summary        string    `json:"summary"`
		RelevanceScore flexScore `json:"relevanceScore"`
		MissingSkills  []string  `json:"missingSkills"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &parsed); err != nil {
		e.fallback(opSummarize, "parse_error", err)
		return domain.FallbackEvaluation(), nil
	}
	if parsed.Summary == "" {
		e.fallback(opSummarize, "parse_error", fmt.Errorf("missing keys in response"))
		return domain.FallbackEvaluation(), nil
	}

	missing := parsed.MissingSkills
	if missing == nil {
		missing = []string{}
	}

	metrics.EnrichmentRequestsTotal.WithLabelValues(opSummarize, "success").Inc()
	return domain.Evaluation{
		Summary:        parsed.Summary,
		RelevanceScore: clampScore(int(parsed.RelevanceScore)),
		MissingSkills:  missing,
	}, nil
}

func (e *Enricher) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an expert technical recruiter. Always answer with a single JSON object and nothing else.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (e *Enricher) fallback(operation, reason string, err error) {
	metrics.EnrichmentRequestsTotal.WithLabelValues(operation, "error").Inc()
	metrics.EnrichmentFallbacksTotal.WithLabelValues(operation, reason).Inc()
	e.logger.Warn("enrichment degraded to defaults",
		zap.String("operation", operation),
		zap.String("reason", reason),
		zap.Error(err),
	)
}

func extractProfilePrompt(resumeText string) string {
	return fmt.Sprintf(`Extract structured information from this resume.

Resume Text:
"""
%s
"""

Return ONLY valid JSON (no markdown, no explanation) with this exact structure:
{
  "skills": ["skill names, normalized (e.g. \"K8s\" -> \"Kubernetes\")"],
  "experience": "A short plain-text summary of the work experience",
  "education": "A short plain-text summary of the education"
}`, resumeText)
}

func summarizePrompt(c *domain.Candidate, jobDescription string) string {
	var sb strings.Builder

	if jobDescription != "" {
		sb.WriteString("Analyze the following candidate profile for the given job description:\n\n")
		sb.WriteString("Job Description:\n")
		sb.WriteString(jobDescription)
		sb.WriteString("\n\n")
	} else {
		sb.WriteString("Analyze the following candidate profile:\n\n")
	}

	fmt.Fprintf(&sb, `Candidate Profile:
Name: %s
Skills: %s
Experience: %s
Education: %s
Resume Text: %s

Return ONLY valid JSON (no markdown, no explanation) with this exact structure:
{
  "summary": "A brief professional summary highlighting key qualifications and experience",
  "relevanceScore": 0,
  "missingSkills": ["key skills that would strengthen the profile"]
}

relevanceScore is a number between 0 and 100 indicating `,
		c.Name, strings.Join(c.Skills, ", "), c.Experience, c.Education, c.ResumeText)

	if jobDescription != "" {
		sb.WriteString("the match with the job requirements.")
	} else {
		sb.WriteString("overall strength of the profile.")
	}

	return sb.String()
}

// cleanJSON strips surrounding code fences and whitespace so that a model
// replying with a ```json block still parses.
func cleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")

	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// flexScore tolerates providers returning the score as a number or a
// quoted string.
type flexScore int

func (f *flexScore) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse score %q: %w", s, err)
	}
	*f = flexScore(v)
	return nil
}
