package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/logger"
)

const (
	storyTemperature = 0.7
	storyMaxTokens   = 350
)

var storyIntroPhrases = []string{
	"here is the story:",
	"the story:",
	"story:",
	"narrative:",
	"here is the narrative:",
	"i will generate the story now:",
	"generated story:",
	"here is the refined story:",
	"final story:",
}

type storyService struct {
	providers []TextGenerator
}

// NewStoryService tries providers in order and returns the first success. Nil
// providers are skipped.
func NewStoryService(primary, fallback TextGenerator) StoryService {
	var providers []TextGenerator
	for _, p := range []TextGenerator{primary, fallback} {
		if p != nil {
			providers = append(providers, p)
		}
	}
	return &storyService{providers: providers}
}

func (s *storyService) GenerateStory(ctx context.Context, in domain.StoryInput) (string, error) {
	logger.EnterMethod("storyService.GenerateStory", "title", in.Title, "hasDraft", strings.TrimSpace(in.Story) != "")
	prompt := BuildStoryPrompt(in)

	for _, p := range s.providers {
		logger.ExternalServiceCall(p.Name(), "Generate")
		raw, err := p.Generate(ctx, prompt)
		logger.ExternalServiceResult(p.Name(), "Generate", err)
		if err != nil {
			continue
		}
		story := CleanStory(raw)
		if story == "" {
			logger.Warn("Story provider returned empty text", "provider", p.Name())
			continue
		}
		logger.ExitMethod("storyService.GenerateStory", "provider", p.Name(), "length", len(story))
		return story, nil
	}

	err := domain.Upstream("generate story",
		fmt.Errorf("story generation services are currently unavailable or rate-limited, please try again later"))
	logger.ExitMethodWithError("storyService.GenerateStory", err)
	return "", err
}

// BuildStoryPrompt refines the draft when one is given and otherwise asks for a new
// first-person story.
func BuildStoryPrompt(in domain.StoryInput) domain.StoryPrompt {
	draft := strings.TrimSpace(in.Story)
	contextLine := fmt.Sprintf("CONTEXT: The campaign is for '%s', category '%s', aiming for $%s.",
		in.Title, in.Category, strconv.FormatFloat(in.GoalAmount, 'f', -1, 64))

	prompt := domain.StoryPrompt{Temperature: storyTemperature, MaxTokens: storyMaxTokens}
	if draft != "" {
		prompt.Instruction = "ROLE: You are an expert fundraising copywriter. Your goal is to refine and expand the 'Initial Draft' below " +
			"into a professional, compelling, and emotionally sincere appeal. " +
			contextLine + " " +
			"TONE & STRUCTURE: The story must be highly urgent, sincere, and infused with hope. It must follow a three-part narrative structure: " +
			"[The Conflict/Problem], [The Solution/Donor's Role], and [The Urgent Call to Action]. " +
			"FORMATTING: Your response MUST be ONLY the refined story text (under 250 words total). " +
			"DO NOT include any titles, markdown headings, or introductory phrases."
		prompt.UserContent = `Initial Draft: "` + draft + `"`
		return prompt
	}

	prompt.Instruction = "ROLE: You are an expert fundraising copywriter. Write a powerful and heart-felt fundraising story " +
		"from a personal perspective (first person, 'I' or 'We'). " +
		contextLine + " " +
		"TONE & STRUCTURE: The story must evoke strong empathy and highlight an immediate, desperate need. " +
		"It must create a sense of urgency, tying the donation directly to a life-changing outcome. " +
		"FORMATTING: Your response MUST be ONLY the story text (under 250 words total). " +
		"DO NOT include any titles, markdown headings, or introductory phrases."
	prompt.UserContent = "Generate the full story now."
	return prompt
}

// CleanStory strips a wrapping code fence, known intro phrases and leading heading marks from
// model output. If nothing is left the trimmed raw text is returned.
func CleanStory(raw string) string {
	trimmed := strings.TrimSpace(raw)
	text := trimmed

	if strings.HasPrefix(text, "```") && strings.HasSuffix(text, "```") {
		lines := strings.Split(text, "\n")
		if len(lines) > 2 {
			text = strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
		}
	}

	for _, phrase := range storyIntroPhrases {
		if len(text) >= len(phrase) && strings.EqualFold(text[:len(phrase)], phrase) {
			text = strings.TrimSpace(text[len(phrase):])
		}
	}

	text = strings.TrimSpace(strings.TrimLeft(text, "# *"))
	if text == "" {
		return trimmed
	}
	return text
}
