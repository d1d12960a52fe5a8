package classify

import (
	"regexp"
	"strings"
)

// ToolPlan flags which tool categories look relevant for a prompt.
type ToolPlan struct {
	WantsWeather bool `json:"wantsWeather"`
	WantsDocs    bool `json:"wantsDocs"`
	WantsMemory  bool `json:"wantsMemory"`
}

var (
	weatherTerms = regexp.MustCompile(`\b(weather|forecast|temperature|temp|rain|raining|snow|sunny|cloudy|wind|windy|humidity|climate|degrees)\b`)
	docsTerms    = regexp.MustCompile(`\b(note|notes|doc|docs|document|documents|file|files|summar(?:y|ies|ize|ise)|count|list|titles?|search|find|wrote|written|learn(?:ed|t)?)\b`)
)

// HeuristicPlan is a deterministic keyword pre-classifier over the prompt.
// It runs before any network call and has no failure mode: it always
// returns a fully populated plan.
func HeuristicPlan(prompt string) ToolPlan {
	lower := strings.ToLower(prompt)
	return ToolPlan{
		WantsWeather: weatherTerms.MatchString(lower),
		WantsDocs:    docsTerms.MatchString(lower),
	}
}
