package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/draftshift/core/internal/pkg/llm"
)

const (
	summaryMaxHeadlines = 5
	summaryMaxTokens    = 200
	summaryTemperature  = 0.3
	summaryTimeout      = 20 * time.Second
)

// SummaryBuilder condenses fetched articles into a short brief. It degrades
// to a deterministic headline digest when no model is configured or the
// model call fails, so callers always get a non-empty summary.
type SummaryBuilder struct {
	client  llm.Client
	timeout time.Duration
}

// NewSummaryBuilder accepts a nil client; the builder then always uses the
// fallback digest.
func NewSummaryBuilder(client llm.Client) *SummaryBuilder {
	return &SummaryBuilder{client: client, timeout: summaryTimeout}
}

func (b *SummaryBuilder) BuildSummary(ctx context.Context, industry, provider string, articles []Article) string {
	headlines := topHeadlines(articles, summaryMaxHeadlines)
	if len(headlines) == 0 {
		return fmt.Sprintf("No recent %s headlines are available.", strings.ToLower(industry))
	}
	if b.client == nil {
		return fallbackSummary(industry, headlines)
	}

	scoped := articles
	if len(scoped) > summaryMaxHeadlines {
		scoped = scoped[:summaryMaxHeadlines]
	}
	out, err := b.callModel(ctx, industry, provider, scoped)
	if err != nil || strings.TrimSpace(out) == "" {
		return fallbackSummary(industry, headlines)
	}
	return strings.TrimSpace(out)
}

func (b *SummaryBuilder) callModel(ctx context.Context, industry, provider string, articles []Article) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	var bullets []string
	for _, article := range articles {
		bullets = append(bullets, fmt.Sprintf("- %s: %s", article.Title, article.Description))
	}
	prompt := fmt.Sprintf(
		"Summarize the following industry headlines into 2 concise sentences calling out the most actionable developments.\nIndustry: %s\nProvider: %s\nHeadlines:\n%s",
		industry, provider, strings.Join(bullets, "\n"),
	)
	return b.client.Complete(ctx,
		"You are a chief-of-staff producing sharp competitive briefs.",
		prompt, summaryMaxTokens, summaryTemperature)
}

func topHeadlines(articles []Article, limit int) []string {
	var headlines []string
	for _, article := range articles {
		if article.Title == "" {
			continue
		}
		headlines = append(headlines, article.Title)
		if len(headlines) == limit {
			break
		}
	}
	return headlines
}

func fallbackSummary(industry string, headlines []string) string {
	return fmt.Sprintf("%s snapshot: %s", industry, strings.Join(headlines, "; "))
}
