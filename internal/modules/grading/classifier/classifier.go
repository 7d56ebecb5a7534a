// Package classifier buckets free-text grading feedback into error
// categories used for study prioritization. Classification is a total
// function: every input maps to exactly one (category, subcategory)
// pair, falling back to (other, unclassified).
package classifier

import "strings"

// Severity flags how serious the grader considered an error.
type Severity string

const (
	SeverityMinor Severity = "minor"
	SeverityMajor Severity = "major"
)

// Category is the closed set of error categories.
type Category string

const (
	// CategorySystematic marks rule-level grammar gaps (tense,
	// agreement, word order). Fixing one prevents many future errors.
	CategorySystematic Category = "systematic"
	// CategoryIsolated marks one-off lexical misses (vocabulary,
	// spelling) with low generalization value.
	CategoryIsolated Category = "isolated"
	// CategoryEnhancement marks technically correct but non-idiomatic
	// phrasing.
	CategoryEnhancement Category = "enhancement"
	// CategoryOther is the fallback for anything unrecognized.
	CategoryOther Category = "other"
)

// ErrorRecord is one piece of grading feedback to classify.
type ErrorRecord struct {
	KeyPointSummary string   `json:"key_point_summary"`
	Explanation     string   `json:"explanation"`
	Severity        Severity `json:"severity"`
}

// Result is an immutable classification outcome.
type Result struct {
	Category    Category `json:"category"`
	Subcategory string   `json:"subcategory"`
}

type errorType struct {
	name     string
	keywords []string
}

// Keyword tables are bilingual (Traditional/Simplified Chinese plus
// English) and matched by substring containment over the lowercased
// summary+explanation text. Order matters: tables are scanned in a
// fixed order and the first type with any keyword hit wins.
var enhancementPhrases = []string{
	"更自然", "更道地", "更地道", "更流暢", "更流畅", "更好的說法", "更好的说法",
	"語感", "语感", "可以優化", "可以优化", "潤飾", "润饰",
	"more natural", "more idiomatic", "idiomatic", "awkward phrasing",
	"could be smoother", "stylistic", "better phrasing",
}

var systematicTypes = []errorType{
	{"verb_conjugation", []string{
		"動詞變化", "动词变化", "三單", "三单", "第三人稱單數", "第三人称单数",
		"verb conjugation", "verb form", "conjugation",
	}},
	{"tense", []string{
		"時態", "时态", "過去式", "过去式", "現在完成", "现在完成", "未來式", "将来时", "進行式", "进行时",
		"tense", "past tense", "present perfect",
	}},
	{"voice", []string{
		"語態", "语态", "被動", "被动", "主動語態", "主动语态",
		"passive voice", "active voice",
	}},
	{"agreement", []string{
		"主謂一致", "主谓一致", "單複數一致", "单复数一致", "數的一致", "数的一致",
		"agreement", "subject-verb",
	}},
	{"word_order", []string{
		"語序", "语序", "詞序", "词序", "倒裝", "倒装",
		"word order", "inversion",
	}},
}

var isolatedTypes = []errorType{
	{"vocabulary", []string{
		"用詞", "用词", "詞彙", "词汇", "選詞", "选词", "單字", "单词",
		"vocabulary", "word choice", "wrong word",
	}},
	{"collocation", []string{
		"搭配",
		"collocation", "goes with",
	}},
	{"preposition", []string{
		"介詞", "介词", "介係詞", "介系词",
		"preposition",
	}},
	{"spelling", []string{
		"拼字", "拼寫", "拼写", "錯字", "错字",
		"spelling", "misspell",
	}},
	{"word_form", []string{
		"詞性", "词性", "詞形", "词形", "名詞形式", "名词形式",
		"word form", "part of speech",
	}},
}

// Classify maps an error record to its (category, subcategory) pair.
// Pure and deterministic; never fails.
//
// The decision list is ordered: stylistic-but-acceptable answers must
// never be filed as hard grammar errors even when they also contain a
// grammar keyword, and systematic errors take precedence over isolated
// ones because a rule gap has higher learning leverage than a surface
// vocabulary miss sharing the same keyword.
func Classify(rec ErrorRecord) Result {
	text := strings.ToLower(strings.TrimSpace(rec.KeyPointSummary + " " + rec.Explanation))

	if rec.Severity == SeverityMinor || containsAny(text, enhancementPhrases) {
		return Result{Category: CategoryEnhancement, Subcategory: "style"}
	}

	for _, t := range systematicTypes {
		if containsAny(text, t.keywords) {
			return Result{Category: CategorySystematic, Subcategory: t.name}
		}
	}

	for _, t := range isolatedTypes {
		if containsAny(text, t.keywords) {
			return Result{Category: CategoryIsolated, Subcategory: t.name}
		}
	}

	return Result{Category: CategoryOther, Subcategory: "unclassified"}
}

func containsAny(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

var categoryNames = map[Category]string{
	CategorySystematic:  "系統性錯誤",
	CategoryIsolated:    "單點錯誤",
	CategoryEnhancement: "表達優化",
	CategoryOther:       "其他",
}

var subcategoryNames = map[string]string{
	"verb_conjugation": "動詞變化",
	"tense":            "時態",
	"voice":            "語態",
	"agreement":        "主謂一致",
	"word_order":       "語序",
	"vocabulary":       "詞彙",
	"collocation":      "搭配",
	"preposition":      "介詞",
	"spelling":         "拼字",
	"word_form":        "詞性",
	"style":            "語感潤飾",
	"unclassified":     "未分類",
}

// CategoryName returns the display name for a category. Unknown keys
// get a placeholder label instead of failing.
func CategoryName(c Category) string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "未知分類"
}

// SubcategoryName returns the display name for a subcategory. Unknown
// keys get a placeholder label instead of failing.
func SubcategoryName(sub string) string {
	if name, ok := subcategoryNames[sub]; ok {
		return name
	}
	return "未知類型"
}

var learningPriorities = map[Category]int{
	CategorySystematic:  1,
	CategoryIsolated:    2,
	CategoryOther:       3,
	CategoryEnhancement: 4,
}

// LearningPriority maps a category to its study priority; lower means
// study first. Unknown categories rank with CategoryOther.
func LearningPriority(c Category) int {
	if p, ok := learningPriorities[c]; ok {
		return p
	}
	return learningPriorities[CategoryOther]
}
