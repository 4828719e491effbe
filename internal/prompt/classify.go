package prompt

import "strings"

// TaskRule maps a task type to its keyword list and the energy
// multiplier known for that task category. Image generation runs
// roughly 3x the energy of plain text for an equivalent token count,
// agentic tasks roughly 2x due to multiple model invocations.
type TaskRule struct {
	Type       string
	Multiplier float64
	Keywords   []string
}

// taskRules is ordered: when two rules tie on keyword hits, the one
// declared first wins.
var taskRules = []TaskRule{
	{
		Type:       "image_generation",
		Multiplier: 3.0,
		Keywords:   []string{"image", "picture", "draw", "illustration", "photo", "render", "logo"},
	},
	{
		Type:       "agentic",
		Multiplier: 2.0,
		Keywords:   []string{"step by step", "plan and execute", "use tools", "browse", "search the web", "agent", "workflow"},
	},
	{
		Type:       "creative_writing",
		Multiplier: 1.3,
		Keywords:   []string{"story", "poem", "essay", "fiction", "screenplay", "lyrics"},
	},
	{
		Type:       "code",
		Multiplier: 1.2,
		Keywords:   []string{"code", "function", "debug", "implement", "refactor", "compile", "script"},
	},
	{
		Type:       "translation",
		Multiplier: 0.9,
		Keywords:   []string{"translate", "translation"},
	},
	{
		Type:       "summarization",
		Multiplier: 0.8,
		Keywords:   []string{"summarize", "summary", "tl;dr", "condense", "shorten this"},
	},
}

// generalTask is the fallback when no keywords match.
var generalTask = TaskMatch{Type: "general", Multiplier: 1.0}

// TaskMatch is the result of classifying a prompt.
type TaskMatch struct {
	Type       string  `json:"type"`
	Multiplier float64 `json:"multiplier"`
	Hits       int     `json:"keyword_hits"`
}

// ClassifyTask picks the task type whose keywords appear most often in
// the text. Ties favor rule declaration order; zero hits yields the
// general task with multiplier 1.0.
func ClassifyTask(text string) TaskMatch {
	lower := strings.ToLower(text)

	best := generalTask
	for _, rule := range taskRules {
		hits := 0
		for _, kw := range rule.Keywords {
			hits += strings.Count(lower, kw)
		}
		if hits > best.Hits {
			best = TaskMatch{Type: rule.Type, Multiplier: rule.Multiplier, Hits: hits}
		}
	}
	return best
}

// MultiplierForTask returns the energy multiplier for a named task
// type. Returns (multiplier, true) if known, (1.0, false) otherwise.
func MultiplierForTask(taskType string) (float64, bool) {
	if taskType == generalTask.Type {
		return generalTask.Multiplier, true
	}
	for _, rule := range taskRules {
		if rule.Type == taskType {
			return rule.Multiplier, true
		}
	}
	return 1.0, false
}
