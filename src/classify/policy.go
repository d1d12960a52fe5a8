package classify

// Combine merges the heuristic signal with the classifier's verdict into
// the final tool plan. The classifier's explicit intent routes tools;
// heuristic flags act as additive triggers so a keyword-obvious request is
// not dropped when the classifier degraded to chat or came back uncertain.
// Heuristics never suppress a tool the classifier requested.
func Combine(heuristic ToolPlan, res Result) ToolPlan {
	plan := heuristic

	switch {
	case res.Intent == IntentWeather:
		plan.WantsWeather = true
	case res.Intent == IntentMulti:
		// Multi-intent prompts fan out to both evidence tools.
		plan.WantsWeather = true
		plan.WantsDocs = true
	case res.Intent.DocRelated():
		plan.WantsDocs = true
	}

	return plan
}
