package domain

// StoryInput describes the campaign a story is generated for. Story is an optional draft.
type StoryInput struct {
	Title      string  `json:"title"`
	Category   string  `json:"category"`
	GoalAmount float64 `json:"goal_amount"`
	Story      string  `json:"story"`
}

// StoryPrompt is the provider-neutral prompt: a system-style instruction plus the user turn.
type StoryPrompt struct {
	Instruction string
	UserContent string
	Temperature float64
	MaxTokens   int
}
