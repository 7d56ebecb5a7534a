package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appcfg "github.com/translearn/core/internal/config"
	"github.com/translearn/core/internal/modules/grading/classifier"
)

func TestParseGradeResponsePlainJSON(t *testing.T) {
	raw := `{"score":85,"feedback":"翻得不錯，繼續加油","errors":[
		{"key_point_summary":"過去式用法錯誤","explanation":"yesterday 要配過去式","severity":"major"},
		{"key_point_summary":"可以更自然","explanation":"這樣說更道地","severity":"minor"}
	]}`

	result, err := parseGradeResponse(raw)
	require.NoError(t, err)

	assert.Equal(t, 85, result.Score)
	assert.Equal(t, "翻得不錯，繼續加油", result.Feedback)
	require.Len(t, result.Errors, 2)

	assert.Equal(t, classifier.CategorySystematic, result.Errors[0].Category)
	assert.Equal(t, "tense", result.Errors[0].Subcategory)
	assert.Equal(t, classifier.SeverityMajor, result.Errors[0].Severity)

	assert.Equal(t, classifier.CategoryEnhancement, result.Errors[1].Category)
	assert.Equal(t, "style", result.Errors[1].Subcategory)
}

func TestParseGradeResponseFencedJSON(t *testing.T) {
	raw := "```json\n{\"score\":\"92\",\"feedback\":\"很棒\",\"errors\":[]}\n```"

	result, err := parseGradeResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, 92, result.Score)
	assert.Empty(t, result.Errors)
}

func TestParseGradeResponseClampsScore(t *testing.T) {
	high, err := parseGradeResponse(`{"score":150,"feedback":"x","errors":[]}`)
	require.NoError(t, err)
	assert.Equal(t, 100, high.Score)

	low, err := parseGradeResponse(`{"score":-10,"feedback":"x","errors":[]}`)
	require.NoError(t, err)
	assert.Equal(t, 0, low.Score)
}

func TestParseGradeResponseDefaultsSeverityToMajor(t *testing.T) {
	raw := `{"score":70,"feedback":"x","errors":[
		{"key_point_summary":"介詞錯誤","explanation":"要用 on","severity":"weird"}
	]}`

	result, err := parseGradeResponse(raw)
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, classifier.SeverityMajor, result.Errors[0].Severity)
}

func TestParseGradeResponseSkipsEmptyErrors(t *testing.T) {
	raw := `{"score":70,"feedback":"x","errors":[
		{"key_point_summary":"","explanation":"","severity":"major"},
		{"key_point_summary":"拼字錯誤","explanation":"recieve -> receive","severity":"major"}
	]}`

	result, err := parseGradeResponse(raw)
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "拼字錯誤", result.Errors[0].KeyPointSummary)
}

func TestParseGradeResponseRejectsGarbage(t *testing.T) {
	_, err := parseGradeResponse("I'm sorry, I can't grade this.")
	assert.Error(t, err)
}

func TestParseGradeResponseFloatScore(t *testing.T) {
	result, err := parseGradeResponse(`{"score":87.6,"feedback":"x","errors":[]}`)
	require.NoError(t, err)
	assert.Equal(t, 88, result.Score)
}

func TestUnmarshalAIJSONWithSurroundingProse(t *testing.T) {
	var out struct {
		Score aiScore `json:"score"`
	}
	raw := "Here is the grade you asked for:\n{\"score\": 60}\nHope this helps!"
	require.NoError(t, unmarshalAIJSON(raw, &out))
	assert.Equal(t, aiScore(60), out.Score)
}

func TestSelectProviderPrefersAssignment(t *testing.T) {
	cfg := appcfg.AIConfig{
		Providers: []appcfg.AIProvider{
			{ID: "first", Type: "OpenAI", Enabled: true, DefaultModel: "gpt-4o-mini"},
			{ID: "second", Type: "Anthropic", Enabled: true, DefaultModel: "claude-haiku-4-5-20251001"},
		},
	}

	picked := selectProvider(cfg, &appcfg.AIModelAssignment{ProviderID: "second", Model: "claude-sonnet-4-5"})
	require.NotNil(t, picked)
	assert.Equal(t, "second", picked.ID)
	assert.Equal(t, "claude-sonnet-4-5", picked.DefaultModel)
}

func TestSelectProviderFallsBackToFirstEnabled(t *testing.T) {
	cfg := appcfg.AIConfig{
		Providers: []appcfg.AIProvider{
			{ID: "disabled", Enabled: false},
			{ID: "enabled", Enabled: true},
		},
	}

	picked := selectProvider(cfg, &appcfg.AIModelAssignment{ProviderID: "missing"})
	require.NotNil(t, picked)
	assert.Equal(t, "enabled", picked.ID)

	assert.Nil(t, selectProvider(appcfg.AIConfig{}, nil))
}

func TestNormalizeOpenAICompatibleEndpoint(t *testing.T) {
	assert.Equal(t, "https://api.openai.com", normalizeOpenAICompatibleEndpoint(""))
	assert.Equal(t, "https://example.com", normalizeOpenAICompatibleEndpoint("https://example.com/v1/"))
	assert.Equal(t, "https://example.com/api", normalizeOpenAICompatibleEndpoint("https://example.com/api/v1"))
}

func TestNormalizeOpenAIBaseURL(t *testing.T) {
	assert.Equal(t, "", normalizeOpenAIBaseURL(""))
	assert.Equal(t, "https://example.com/v1", normalizeOpenAIBaseURL("https://example.com"))
	assert.Equal(t, "https://example.com/v1", normalizeOpenAIBaseURL("https://example.com/v1/"))
}
