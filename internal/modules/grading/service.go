package grading

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	appcfg "github.com/translearn/core/internal/config"
	"github.com/translearn/core/internal/modules/grading/classifier"
)

var (
	ErrNoProvider   = errNoProvider
	ErrEmptyRequest = errors.New("prompt and translation are required")
)

type Service struct {
	cfg appcfg.AIConfig
}

func NewService(cfg appcfg.AIConfig) *Service {
	return &Service{cfg: cfg}
}

// aiScore tolerates the number arriving as an int, a float, or a
// quoted string. Models do all three.
type aiScore int

func (s *aiScore) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*s = 0
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("score is not a number: %s", raw)
	}
	*s = aiScore(math.Round(f))
	return nil
}

type aiGradeOutput struct {
	Score    aiScore `json:"score"`
	Feedback string  `json:"feedback"`
	Errors   []struct {
		KeyPointSummary string `json:"key_point_summary"`
		Explanation     string `json:"explanation"`
		Severity        string `json:"severity"`
	} `json:"errors"`
}

// Grade sends the attempt to the configured provider and returns the
// parsed, classified result.
func (s *Service) Grade(ctx context.Context, req GradeRequest) (*GradeResult, error) {
	promptText := strings.TrimSpace(req.PromptText)
	translation := strings.TrimSpace(req.UserTranslation)
	if promptText == "" || translation == "" {
		return nil, ErrEmptyRequest
	}

	provider := selectProvider(s.cfg, s.cfg.GradingModel)
	if provider == nil {
		return nil, ErrNoProvider
	}

	systemPrompt, prompt := buildGradingPrompt(promptText, translation)
	raw, err := callWithSystemPrompt(ctx, provider, systemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("grading call failed: %w", err)
	}

	return parseGradeResponse(raw)
}

// parseGradeResponse turns a raw model response into a GradeResult,
// clamping the score and classifying every reported error.
func parseGradeResponse(raw string) (*GradeResult, error) {
	var output aiGradeOutput
	if err := unmarshalAIJSON(raw, &output); err != nil {
		return nil, err
	}

	result := &GradeResult{
		Score:    clampScore(int(output.Score)),
		Feedback: strings.TrimSpace(output.Feedback),
	}

	for _, e := range output.Errors {
		summary := strings.TrimSpace(e.KeyPointSummary)
		explanation := strings.TrimSpace(e.Explanation)
		if summary == "" && explanation == "" {
			continue
		}

		severity := classifier.Severity(strings.ToLower(strings.TrimSpace(e.Severity)))
		if severity != classifier.SeverityMinor {
			severity = classifier.SeverityMajor
		}

		res := classifier.Classify(classifier.ErrorRecord{
			KeyPointSummary: summary,
			Explanation:     explanation,
			Severity:        severity,
		})
		result.Errors = append(result.Errors, GradedError{
			KeyPointSummary: summary,
			Explanation:     explanation,
			Severity:        severity,
			Category:        res.Category,
			Subcategory:     res.Subcategory,
		})
	}

	return result, nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
