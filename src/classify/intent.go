package classify

// Intent is the classified purpose of a prompt, drawn from a closed set.
type Intent string

const (
	IntentListNotes     Intent = "list_notes"
	IntentCountNotes    Intent = "count_notes"
	IntentTitles        Intent = "titles"
	IntentFindNote      Intent = "find_note"
	IntentSummarizeNote Intent = "summarize_note"
	IntentSearchDocs    Intent = "search_docs"
	IntentWeather       Intent = "weather"
	IntentChat          Intent = "chat"
	IntentMulti         Intent = "multi"
)

var knownIntents = map[Intent]bool{
	IntentListNotes:     true,
	IntentCountNotes:    true,
	IntentTitles:        true,
	IntentFindNote:      true,
	IntentSummarizeNote: true,
	IntentSearchDocs:    true,
	IntentWeather:       true,
	IntentChat:          true,
	IntentMulti:         true,
}

// Valid reports whether the intent belongs to the closed enumeration.
func (i Intent) Valid() bool { return knownIntents[i] }

// DocRelated reports whether the intent routes to the document tool.
func (i Intent) DocRelated() bool {
	switch i {
	case IntentListNotes, IntentCountNotes, IntentTitles, IntentFindNote,
		IntentSummarizeNote, IntentSearchDocs:
		return true
	default:
		return false
	}
}

// ListingOnly reports whether the intent asks for a bare file enumeration
// rather than content search.
func (i Intent) ListingOnly() bool {
	switch i {
	case IntentListNotes, IntentCountNotes, IntentTitles:
		return true
	default:
		return false
	}
}

// Result is the classifier's verdict for a single run. Immutable once
// produced.
type Result struct {
	Intent     Intent         `json:"intent" validate:"required"`
	Args       map[string]any `json:"args"`
	Confidence float64        `json:"confidence" validate:"gte=0,lte=1"`
}

// SafeDefault is the classification substituted on any classifier failure.
func SafeDefault() Result {
	return Result{Intent: IntentChat, Args: map[string]any{}, Confidence: 0}
}
