package pagedigest

// Lexicon is the word data used by task detection and salience scoring.
// It is configuration: callers may load their own and pass it to the
// analyzer. A Lexicon is never mutated after it is handed to an analyzer.
type Lexicon struct {
	// ImperativeVerbs are verbs that open an action item ("review", "send").
	ImperativeVerbs []string `yaml:"imperative_verbs"`

	// Verbs are additional verbs counted by the deadline signal.
	Verbs []string `yaml:"verbs"`

	// Markers are case-insensitive prefixes that flag explicit action items.
	Markers []string `yaml:"markers"`

	// DeadlineWords signal a due date ("by", "due", "deadline").
	DeadlineWords []string `yaml:"deadline_words"`

	// DateWords are tokens treated as date-like (weekdays, months, "tomorrow").
	DateWords []string `yaml:"date_words"`

	// StopWords are ignored when computing term frequencies.
	StopWords []string `yaml:"stop_words"`
}

// DefaultLexicon returns the built-in English lexicon.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		ImperativeVerbs: []string{
			"add", "approve", "archive", "ask", "assign", "book", "build", "buy",
			"call", "cancel", "check", "clean", "complete", "confirm", "contact",
			"create", "decide", "define", "delete", "deliver", "deploy", "discuss",
			"document", "download", "draft", "email", "ensure", "finalize", "finish",
			"fix", "follow", "gather", "implement", "install", "invite", "make",
			"merge", "migrate", "notify", "order", "organize", "pay", "plan",
			"post", "prepare", "publish", "reach", "read", "register", "remember",
			"remove", "renew", "reply", "report", "request", "reserve", "review",
			"run", "schedule", "send", "set", "share", "sign", "submit", "test",
			"update", "upload", "verify", "write",
		},
		Verbs: []string{
			"is", "are", "was", "were", "be", "been", "will", "must", "should",
			"shall", "need", "needs", "have", "has", "had", "do", "does", "did",
			"can", "could", "would", "expect", "expected", "require", "required",
			"launch", "launches", "ship", "ships", "close", "closes", "start",
			"starts", "end", "ends", "submitted", "sent", "completed", "reviewed",
		},
		Markers: []string{
			"todo", "fixme", "action:", "action item:", "next step:", "next steps:",
		},
		DeadlineWords: []string{
			"by", "due", "deadline", "before", "until", "no later than",
		},
		DateWords: []string{
			"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
			"january", "february", "march", "april", "may", "june", "july", "august",
			"september", "october", "november", "december",
			"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "sept", "oct", "nov", "dec",
			"today", "tonight", "tomorrow", "eod", "eow", "eom", "noon", "midnight",
		},
		StopWords: []string{
			"a", "an", "and", "are", "as", "at", "be", "but", "by", "for", "from",
			"has", "have", "he", "her", "his", "i", "in", "is", "it", "its", "of",
			"on", "or", "our", "she", "so", "that", "the", "their", "them", "then",
			"there", "these", "they", "this", "to", "was", "we", "were", "what",
			"when", "which", "who", "will", "with", "you", "your",
		},
	}
}
