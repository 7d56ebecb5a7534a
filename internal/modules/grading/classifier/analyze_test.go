package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzePatternsEmpty(t *testing.T) {
	report := AnalyzePatterns(nil)
	assert.Equal(t, 0, report.Total)
	assert.Empty(t, report.Counts)
	assert.Empty(t, report.Suggestions)
}

func TestAnalyzePatternsTallies(t *testing.T) {
	records := []ErrorRecord{
		{KeyPointSummary: "時態錯誤", Severity: SeverityMajor},
		{KeyPointSummary: "過去式用錯", Severity: SeverityMajor},
		{KeyPointSummary: "介詞錯誤", Severity: SeverityMajor},
		{KeyPointSummary: "可以更自然", Severity: SeverityMajor},
		{KeyPointSummary: "小地方", Severity: SeverityMinor},
	}
	report := AnalyzePatterns(records)

	assert.Equal(t, 5, report.Total)
	require.Len(t, report.Counts, 3)

	// Systematic first, then isolated, then enhancement.
	assert.Equal(t, PatternStat{CategorySystematic, "tense", 2}, report.Counts[0])
	assert.Equal(t, PatternStat{CategoryIsolated, "preposition", 1}, report.Counts[1])
	assert.Equal(t, PatternStat{CategoryEnhancement, "style", 2}, report.Counts[2])
}

func TestAnalyzePatternsSuggestionsOrderAndCap(t *testing.T) {
	records := []ErrorRecord{
		{KeyPointSummary: "語序錯誤", Severity: SeverityMajor},
		{KeyPointSummary: "語序又錯了", Severity: SeverityMajor},
		{KeyPointSummary: "拼字錯誤", Severity: SeverityMajor},
		{KeyPointSummary: "更道地的說法", Severity: SeverityMajor},
		{KeyPointSummary: "隨便什麼", Severity: SeverityMajor},
	}
	report := AnalyzePatterns(records)

	require.Len(t, report.Suggestions, 3)
	assert.Contains(t, report.Suggestions[0], "語序")
	assert.Contains(t, report.Suggestions[0], "2 次")
	assert.Contains(t, report.Suggestions[1], "單點錯誤")
	assert.Contains(t, report.Suggestions[2], "語感")
}

func TestAnalyzePatternsTopSystematicTieBrokenByCount(t *testing.T) {
	records := []ErrorRecord{
		{KeyPointSummary: "時態錯誤", Severity: SeverityMajor},
		{KeyPointSummary: "被動語態錯誤", Severity: SeverityMajor},
		{KeyPointSummary: "語態又搞錯", Severity: SeverityMajor},
	}
	report := AnalyzePatterns(records)

	// voice has 2 hits vs tense's 1, so the suggestion names voice even
	// though tense comes first in the keyword table.
	require.NotEmpty(t, report.Suggestions)
	assert.Contains(t, report.Suggestions[0], SubcategoryName("voice"))
}

func TestAnalyzePatternsDeterministic(t *testing.T) {
	records := []ErrorRecord{
		{KeyPointSummary: "用詞不當", Severity: SeverityMajor},
		{KeyPointSummary: "搭配錯誤", Severity: SeverityMajor},
		{KeyPointSummary: "時態錯誤", Severity: SeverityMajor},
	}
	first := AnalyzePatterns(records)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, AnalyzePatterns(records))
	}
}

func TestAnalyzePatternsNoSystematicSkipsFirstSuggestion(t *testing.T) {
	records := []ErrorRecord{
		{KeyPointSummary: "拼字錯誤", Severity: SeverityMajor},
	}
	report := AnalyzePatterns(records)
	require.Len(t, report.Suggestions, 1)
	assert.Contains(t, report.Suggestions[0], "單點錯誤")
}
