package models

// modelPrice is USD per one million tokens.
type modelPrice struct {
	Prompt     float64
	Completion float64
}

// priceTable covers the models the agent is commonly configured with.
// Unknown models estimate to zero rather than guessing.
var priceTable = map[string]modelPrice{
	"gpt-4o":                   {Prompt: 2.50, Completion: 10.00},
	"gpt-4o-mini":              {Prompt: 0.15, Completion: 0.60},
	"gpt-4.1":                  {Prompt: 2.00, Completion: 8.00},
	"gpt-4.1-mini":             {Prompt: 0.40, Completion: 1.60},
	"claude-3-5-sonnet-latest": {Prompt: 3.00, Completion: 15.00},
	"claude-3-5-haiku-latest":  {Prompt: 0.80, Completion: 4.00},
	"gemini-1.5-pro":           {Prompt: 1.25, Completion: 5.00},
	"gemini-1.5-flash":         {Prompt: 0.075, Completion: 0.30},
}

// EstimateCost converts accumulated usage into a USD estimate for the given
// model. Models missing from the price table (local models included) cost 0.
func EstimateCost(model string, usage Usage) float64 {
	price, ok := priceTable[model]
	if !ok {
		return 0
	}
	const million = 1_000_000
	return float64(usage.PromptTokens)/million*price.Prompt +
		float64(usage.CompletionTokens)/million*price.Completion
}
