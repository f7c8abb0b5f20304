package news

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

type fakeLLM struct {
	out   string
	err   error
	calls int
}

func (f *fakeLLM) Complete(_ context.Context, _, _ string, _ int, _ float64) (string, error) {
	f.calls++
	return f.out, f.err
}

func TestBuildSummaryNoHeadlines(t *testing.T) {
	b := NewSummaryBuilder(nil)

	got := b.BuildSummary(context.Background(), "Technology", "GNews", nil)

	assert.Equal(t, got, "No recent technology headlines are available.")
}

func TestBuildSummaryFallbackWithoutClient(t *testing.T) {
	b := NewSummaryBuilder(nil)
	articles := []Article{
		{Title: "First", URL: "u"},
		{Title: "Second", URL: "u"},
	}

	got := b.BuildSummary(context.Background(), "Finance", "Alpha Vantage", articles)

	assert.Equal(t, got, "Finance snapshot: First; Second")
}

func TestBuildSummaryFallbackSkipsEmptyTitlesAndCapsAtFive(t *testing.T) {
	b := NewSummaryBuilder(nil)
	articles := []Article{
		{Title: "", URL: "u"},
		{Title: "A"}, {Title: "B"}, {Title: "C"},
		{Title: "D"}, {Title: "E"}, {Title: "F"},
	}

	got := b.BuildSummary(context.Background(), "Energy", "GDELT Project", articles)

	assert.Equal(t, got, "Energy snapshot: A; B; C; D; E")
}

func TestBuildSummaryUsesModelOutput(t *testing.T) {
	client := &fakeLLM{out: "  Two sharp sentences about retail.  "}
	b := NewSummaryBuilder(client)

	got := b.BuildSummary(context.Background(), "Retail", "The Guardian Open Platform", []Article{{Title: "Slump"}})

	assert.Equal(t, got, "Two sharp sentences about retail.")
	assert.Equal(t, client.calls, 1)
}

func TestBuildSummaryFallsBackOnModelError(t *testing.T) {
	client := &fakeLLM{err: errors.New("model unavailable")}
	b := NewSummaryBuilder(client)

	got := b.BuildSummary(context.Background(), "Retail", "The Guardian Open Platform", []Article{{Title: "Slump"}})

	assert.Equal(t, got, "Retail snapshot: Slump")
}

func TestBuildSummaryFallsBackOnBlankModelOutput(t *testing.T) {
	client := &fakeLLM{out: "   "}
	b := NewSummaryBuilder(client)

	got := b.BuildSummary(context.Background(), "Healthcare", "NewsData.io", []Article{{Title: "Trial"}})

	assert.Equal(t, got, "Healthcare snapshot: Trial")
}

func TestBuildSummaryNeverReturnsEmpty(t *testing.T) {
	cases := []struct {
		name     string
		client   *fakeLLM
		articles []Article
	}{
		{"nil client no articles", nil, nil},
		{"erroring client", &fakeLLM{err: errors.New("boom")}, []Article{{Title: "T"}}},
		{"blank output", &fakeLLM{out: ""}, []Article{{Title: "T"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var b *SummaryBuilder
			if tc.client == nil {
				b = NewSummaryBuilder(nil)
			} else {
				b = NewSummaryBuilder(tc.client)
			}
			got := b.BuildSummary(context.Background(), "Technology", "GNews", tc.articles)
			if strings.TrimSpace(got) == "" {
				t.Fatalf("expected non-empty summary")
			}
		})
	}
}
