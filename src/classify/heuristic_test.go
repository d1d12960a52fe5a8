package classify

import "testing"

func TestHeuristicPlan(t *testing.T) {
	cases := []struct {
		prompt       string
		wantsWeather bool
		wantsDocs    bool
	}{
		{"What's the forecast today?", true, false},
		{"Summarize last week's notes.", false, true},
		{"What's the weather and what did we learn last week?", true, true},
		{"Tell me a joke", false, false},
		{"how many notes do I have", false, true},
		{"is it raining in Lisbon?", true, false},
		{"list the titles of my documents", false, true},
	}
	for _, tc := range cases {
		got := HeuristicPlan(tc.prompt)
		if got.WantsWeather != tc.wantsWeather || got.WantsDocs != tc.wantsDocs {
			t.Errorf("HeuristicPlan(%q) = %+v, want weather=%t docs=%t",
				tc.prompt, got, tc.wantsWeather, tc.wantsDocs)
		}
	}
}

func TestHeuristicPlanDeterministic(t *testing.T) {
	prompt := "Will it snow tomorrow? Also list my notes."
	first := HeuristicPlan(prompt)
	for i := 0; i < 5; i++ {
		if HeuristicPlan(prompt) != first {
			t.Fatal("heuristic plan must be deterministic")
		}
	}
}

func TestCombineClassifierRoutes(t *testing.T) {
	plan := Combine(ToolPlan{}, Result{Intent: IntentWeather, Confidence: 0.9})
	if !plan.WantsWeather || plan.WantsDocs {
		t.Fatalf("weather intent should route weather only: %+v", plan)
	}

	plan = Combine(ToolPlan{}, Result{Intent: IntentSearchDocs, Confidence: 0.9})
	if !plan.WantsDocs || plan.WantsWeather {
		t.Fatalf("search_docs intent should route docs only: %+v", plan)
	}

	plan = Combine(ToolPlan{}, Result{Intent: IntentMulti, Confidence: 0.9})
	if !plan.WantsDocs || !plan.WantsWeather {
		t.Fatalf("multi intent should route both tools: %+v", plan)
	}
}

func TestCombineHeuristicIsAdditive(t *testing.T) {
	// A degraded classifier (chat, confidence 0) must not drop a
	// keyword-obvious request.
	plan := Combine(ToolPlan{WantsWeather: true}, SafeDefault())
	if !plan.WantsWeather {
		t.Fatalf("heuristic trigger lost: %+v", plan)
	}

	// And the heuristic never suppresses a classifier-requested tool.
	plan = Combine(ToolPlan{WantsDocs: true}, Result{Intent: IntentWeather, Confidence: 1})
	if !plan.WantsWeather || !plan.WantsDocs {
		t.Fatalf("expected both tools: %+v", plan)
	}
}
