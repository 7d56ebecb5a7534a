package classifier

import (
	"fmt"
	"sort"
)

// PatternStat is the tally for one (category, subcategory) bucket.
type PatternStat struct {
	Category    Category `json:"category"`
	Subcategory string   `json:"subcategory"`
	Count       int      `json:"count"`
}

// Report summarizes the recurring error patterns of a batch of records.
type Report struct {
	Total       int           `json:"total"`
	Counts      []PatternStat `json:"counts"`
	Suggestions []string      `json:"suggestions"`
}

const maxSuggestions = 3

// AnalyzePatterns classifies every record and aggregates the results
// into ranked tallies plus up to three study suggestions. Counts are
// ordered by learning priority, then count descending, then by the
// fixed table order so equal inputs always produce equal reports.
func AnalyzePatterns(records []ErrorRecord) Report {
	report := Report{Total: len(records)}
	if len(records) == 0 {
		return report
	}

	tally := make(map[Result]int)
	for _, rec := range records {
		tally[Classify(rec)]++
	}

	for res, count := range tally {
		report.Counts = append(report.Counts, PatternStat{
			Category:    res.Category,
			Subcategory: res.Subcategory,
			Count:       count,
		})
	}
	sort.SliceStable(report.Counts, func(i, j int) bool {
		a, b := report.Counts[i], report.Counts[j]
		if pa, pb := LearningPriority(a.Category), LearningPriority(b.Category); pa != pb {
			return pa < pb
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return subcategoryRank(a.Subcategory) < subcategoryRank(b.Subcategory)
	})

	report.Suggestions = buildSuggestions(report.Counts)
	return report
}

// buildSuggestions emits at most three suggestions in fixed category
// order: the dominant systematic weakness first, then isolated misses,
// then stylistic polish.
func buildSuggestions(counts []PatternStat) []string {
	var suggestions []string

	for _, stat := range counts {
		if stat.Category != CategorySystematic {
			continue
		}
		suggestions = append(suggestions, fmt.Sprintf(
			"「%s」出現了 %d 次，是系統性的文法弱點，建議優先複習相關規則",
			SubcategoryName(stat.Subcategory), stat.Count))
		break
	}

	if n := categoryTotal(counts, CategoryIsolated); n > 0 {
		suggestions = append(suggestions, fmt.Sprintf(
			"有 %d 個單點錯誤（用詞、拼字等），累積起來複習一遍就好", n))
	}

	if n := categoryTotal(counts, CategoryEnhancement); n > 0 {
		suggestions = append(suggestions, fmt.Sprintf(
			"有 %d 處表達可以更自然，多讀道地的例句慢慢培養語感", n))
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

func categoryTotal(counts []PatternStat, c Category) int {
	total := 0
	for _, stat := range counts {
		if stat.Category == c {
			total += stat.Count
		}
	}
	return total
}

// subcategoryRank returns the position of a subcategory in the fixed
// keyword table order, used only as the final tie-breaker.
func subcategoryRank(sub string) int {
	rank := 0
	for _, t := range systematicTypes {
		if t.name == sub {
			return rank
		}
		rank++
	}
	for _, t := range isolatedTypes {
		if t.name == sub {
			return rank
		}
		rank++
	}
	switch sub {
	case "style":
		return rank
	default:
		return rank + 1
	}
}
