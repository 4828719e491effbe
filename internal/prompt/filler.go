package prompt

import (
	"regexp"
	"sort"
	"strings"
)

// fillerPhrases are politeness and filler constructs that add tokens
// without changing what the model is asked to do. Longer phrases are
// matched before their substrings ("could you please" before
// "please").
var fillerPhrases = []string{
	"i would really appreciate it if you could",
	"i would appreciate it if you could",
	"if you don't mind me asking",
	"i was wondering if you could",
	"sorry to bother you",
	"thanks in advance",
	"if you don't mind",
	"would you kindly",
	"could you please",
	"would you please",
	"can you please",
	"if possible",
	"thank you so much",
	"thank you",
	"hi there",
	"please",
	"thanks",
	"hello",
	"kindly",
}

// fillerPatterns holds one word-boundary-safe, case-insensitive pattern
// per phrase, in longest-first match order.
var fillerPatterns = buildFillerPatterns()

type fillerPattern struct {
	phrase string
	re     *regexp.Regexp
}

func buildFillerPatterns() []fillerPattern {
	phrases := make([]string, len(fillerPhrases))
	copy(phrases, fillerPhrases)
	sort.SliceStable(phrases, func(i, j int) bool {
		return len(phrases[i]) > len(phrases[j])
	})

	patterns := make([]fillerPattern, 0, len(phrases))
	for _, phrase := range phrases {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b[[:punct:]]?`)
		patterns = append(patterns, fillerPattern{phrase: phrase, re: re})
	}
	return patterns
}

var multiSpace = regexp.MustCompile(`\s{2,}`)

// FillerFinding reports one filler phrase and how often it appeared.
type FillerFinding struct {
	Phrase string `json:"phrase"`
	Count  int    `json:"count"`
}

// FillerResult is the outcome of stripping filler from a prompt.
type FillerResult struct {
	Original    string          `json:"original"`
	Optimized   string          `json:"optimized"`
	Findings    []FillerFinding `json:"findings,omitempty"`
	TokensSaved int             `json:"tokens_saved"`
}

// StripFiller removes filler and politeness phrases from a prompt and
// reports the estimated token savings. Stripping an already-clean
// prompt returns it unchanged (modulo collapsed whitespace).
func StripFiller(text string) FillerResult {
	result := FillerResult{Original: text}

	cleaned := text
	for _, fp := range fillerPatterns {
		matches := fp.re.FindAllString(cleaned, -1)
		if len(matches) == 0 {
			continue
		}
		result.Findings = append(result.Findings, FillerFinding{
			Phrase: fp.phrase,
			Count:  len(matches),
		})
		cleaned = fp.re.ReplaceAllString(cleaned, " ")
	}

	cleaned = multiSpace.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	result.Optimized = cleaned

	if saved := EstimateTokens(text) - EstimateTokens(cleaned); saved > 0 {
		result.TokensSaved = saved
	}
	return result
}

// Analysis bundles the full prompt analysis used by the advisor and
// the analyze endpoint.
type Analysis struct {
	EstimatedTokens int          `json:"estimated_tokens"`
	Task            TaskMatch    `json:"task"`
	Filler          FillerResult `json:"filler"`
}

// Analyze runs token estimation, task classification, and filler
// stripping over a prompt.
func Analyze(text string) Analysis {
	return Analysis{
		EstimatedTokens: EstimateTokens(text),
		Task:            ClassifyTask(text),
		Filler:          StripFiller(text),
	}
}
