// Package prompt analyzes prompt text: heuristic token estimation,
// keyword-based task classification, and filler-phrase stripping.
package prompt

// charsPerToken is the rule-of-thumb ratio for English text.
const charsPerToken = 4

// EstimateTokens approximates the token count of a text using the
// ~4 characters per token heuristic, rounding up so any non-empty text
// costs at least one token.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return (len(text) + charsPerToken - 1) / charsPerToken
}
