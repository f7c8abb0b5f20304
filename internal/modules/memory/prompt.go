package memory

import (
	"fmt"
	"strings"

	"github.com/draftshift/core/internal/models"
)

// RenderPromptSection formats stored memories as bullet lines for a model
// prompt. Always returns a non-empty section.
func RenderPromptSection(memories []models.UserMemoryModel) string {
	if len(memories) == 0 {
		return "No stored memories yet."
	}

	var lines []string
	for _, item := range memories {
		text := strings.TrimSpace(item.Memory)
		if text == "" {
			continue
		}
		source := item.Source
		if source == "" {
			source = defaultSource
		}
		suffix := fmt.Sprintf(" (source: %s", source)
		if item.Importance != 0 {
			suffix += fmt.Sprintf(", importance: %d", item.Importance)
		}
		suffix += ")"
		lines = append(lines, "- "+text+suffix)
	}
	if len(lines) == 0 {
		return "No stored memories yet."
	}
	return "User memory (keep this in mind):\n" + strings.Join(lines, "\n")
}
