package onboarding

import (
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/draftshift/core/internal/models"
)

func TestRenderPromptSectionMissingRecord(t *testing.T) {
	assert.Equal(t, RenderPromptSection(nil), "Onboarding context: none found for this user.")
}

func TestRenderPromptSectionFullRecord(t *testing.T) {
	got := RenderPromptSection(&models.OnboardingContextModel{
		Name:           "Ada",
		Company:        "Looms Ltd",
		Role:           "Founder",
		Industry:       "Technology",
		CompanyMission: "Automate weaving",
		TargetAudience: "Mill owners",
		TopicsToPost:   "automation, hiring",
		SelectedGoals:  models.StringArray{"grow audience", "hire"},
		SelectedHooks:  models.StringArray{"contrarian"},
	})

	want := "Onboarding context:\n" +
		"- Name: Ada\n" +
		"- Role: Founder at Looms Ltd\n" +
		"- Industry: Technology\n" +
		"- Company mission: Automate weaving\n" +
		"- Target audience: Mill owners\n" +
		"- Topics to post about: automation, hiring\n" +
		"- Goals: grow audience, hire\n" +
		"- Preferred hooks: contrarian"
	assert.Equal(t, got, want)
}

func TestRenderPromptSectionPlaceholders(t *testing.T) {
	got := RenderPromptSection(&models.OnboardingContextModel{Name: "Ada"})

	assert.Equal(t, strings.Contains(got, "- Role: Not provided at Unknown company"), true)
	assert.Equal(t, strings.Contains(got, "- Industry: Unknown industry"), true)
	assert.Equal(t, strings.Contains(got, "- Goals: Not provided"), true)
	// The rendered block must never leak null-ish values.
	assert.Equal(t, strings.Contains(got, "null"), false)
	assert.Equal(t, strings.Contains(got, "<nil>"), false)
}
