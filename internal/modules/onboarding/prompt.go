package onboarding

import (
	"strings"

	"github.com/draftshift/core/internal/models"
)

// RenderPromptSection formats an onboarding row for a model prompt. Every
// missing field gets a readable placeholder; the output never contains
// null-ish values.
func RenderPromptSection(record *models.OnboardingContextModel) string {
	if record == nil {
		return "Onboarding context: none found for this user."
	}

	lines := []string{
		"Onboarding context:",
		"- Name: " + orPlaceholder(record.Name, "Not provided"),
		"- Role: " + orPlaceholder(record.Role, "Not provided") +
			" at " + orPlaceholder(record.Company, "Unknown company"),
		"- Industry: " + orPlaceholder(record.Industry, "Unknown industry"),
		"- Company mission: " + orPlaceholder(record.CompanyMission, "Not provided"),
		"- Target audience: " + orPlaceholder(record.TargetAudience, "Not provided"),
		"- Topics to post about: " + orPlaceholder(record.TopicsToPost, "Not provided"),
		"- Goals: " + joinOrPlaceholder(record.SelectedGoals),
		"- Preferred hooks: " + joinOrPlaceholder(record.SelectedHooks),
	}
	return strings.Join(lines, "\n")
}

func orPlaceholder(value, placeholder string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return placeholder
}

func joinOrPlaceholder(values []string) string {
	var kept []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return "Not provided"
	}
	return strings.Join(kept, ", ")
}
