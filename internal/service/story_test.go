package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kindnessconnect-backend/internal/clients"
	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/service"
)

func TestBuildStoryPrompt(t *testing.T) {
	t.Run("Refine", func(t *testing.T) {
		p := service.BuildStoryPrompt(domain.StoryInput{Title: "Roof", Category: "Housing", GoalAmount: 5000, Story: "  our roof fell  "})
		assert.Equal(t, `Initial Draft: "our roof fell"`, p.UserContent)
		assert.Contains(t, p.Instruction, "refine and expand")
		assert.Contains(t, p.Instruction, "CONTEXT: The campaign is for 'Roof', category 'Housing', aiming for $5000.")
		assert.Equal(t, 0.7, p.Temperature)
		assert.Equal(t, 350, p.MaxTokens)
	})

	t.Run("Generate", func(t *testing.T) {
		p := service.BuildStoryPrompt(domain.StoryInput{Title: "Roof", Category: "Housing", GoalAmount: 99.5})
		assert.Equal(t, "Generate the full story now.", p.UserContent)
		assert.Contains(t, p.Instruction, "first person")
		assert.Contains(t, p.Instruction, "aiming for $99.5.")
	})
}

func TestCleanStory(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"Plain", "  We need help.  ", "We need help."},
		{"Fence", "```\nWe need help.\n```", "We need help."},
		{"IntroPhrase", "Here is the story: We need help.", "We need help."},
		{"IntroPhraseCase", "FINAL STORY:\nWe need help.", "We need help."},
		{"Heading", "## **We need help.", "We need help."},
		{"OnlyIntro", "Story:", "Story:"},
		{"ShortFenceKept", "```text```", "```text```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.CleanStory(tt.raw))
		})
	}
}

func TestStoryService_GenerateStory(t *testing.T) {
	ctx := context.Background()
	in := domain.StoryInput{Title: "Roof", Category: "Housing", GoalAmount: 5000}

	t.Run("PrimarySucceeds", func(t *testing.T) {
		primary := &MockTextGenerator{name: "gemini"}
		fallback := &MockTextGenerator{name: "huggingface"}
		svc := service.NewStoryService(primary, fallback)
		primary.On("Generate", ctx, mock.Anything).Return("Story: We need help.", nil).Once()

		story, err := svc.GenerateStory(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "We need help.", story)
		fallback.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("FallsBack", func(t *testing.T) {
		primary := &MockTextGenerator{name: "gemini"}
		fallback := &MockTextGenerator{name: "huggingface"}
		svc := service.NewStoryService(primary, fallback)
		primary.On("Generate", ctx, mock.Anything).Return("", errors.New("quota")).Once()
		fallback.On("Generate", ctx, mock.MatchedBy(func(p domain.StoryPrompt) bool {
			return p.UserContent == "Generate the full story now."
		})).Return("From the fallback.", nil).Once()

		story, err := svc.GenerateStory(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "From the fallback.", story)
	})

	t.Run("UnconfiguredPrimaryFallsBackAndCleans", func(t *testing.T) {
		primary := clients.NewGeminiClient("", "", "gemini-2.5-flash", time.Second)
		fallback := &MockTextGenerator{name: "huggingface"}
		svc := service.NewStoryService(primary, fallback)
		draft := domain.StoryInput{Title: "Roof", Category: "Housing", GoalAmount: 5000, Story: "our roof fell in"}
		fallback.On("Generate", ctx, mock.MatchedBy(func(p domain.StoryPrompt) bool {
			return p.UserContent == `Initial Draft: "our roof fell in"` && strings.Contains(p.Instruction, "refine and expand")
		})).Return("```\nHere is the story: Last winter our roof fell in.\nWe need help.\n```", nil).Once()

		story, err := svc.GenerateStory(ctx, draft)
		require.NoError(t, err)
		assert.Equal(t, "Last winter our roof fell in.\nWe need help.", story)
		fallback.AssertExpectations(t)
	})

	t.Run("BothFail", func(t *testing.T) {
		primary := &MockTextGenerator{name: "gemini"}
		fallback := &MockTextGenerator{name: "huggingface"}
		svc := service.NewStoryService(primary, fallback)
		primary.On("Generate", ctx, mock.Anything).Return("", errors.New("quota")).Once()
		fallback.On("Generate", ctx, mock.Anything).Return("", errors.New("rate limited")).Once()

		_, err := svc.GenerateStory(ctx, in)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
		assert.False(t, strings.Contains(strings.ToLower(err.Error()), "gemini"))
	})

	t.Run("NoProviders", func(t *testing.T) {
		svc := service.NewStoryService(nil, nil)
		_, err := svc.GenerateStory(ctx, in)
		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	})
}
