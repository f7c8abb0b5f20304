package news

// Article is the provider-agnostic article shape produced by the per-provider
// parsers. Title and URL are mandatory; everything else is best-effort.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at,omitempty"`
	Source      string `json:"source,omitempty"`
}

// IndustryNewsResult is one successful fetch-parse-summarize cycle for an
// industry. Immutable once built; superseded by the next successful fetch.
type IndustryNewsResult struct {
	Industry string    `json:"industry"`
	Slug     string    `json:"slug"`
	Provider string    `json:"provider"`
	Articles []Article `json:"articles"`
	Summary  string    `json:"summary"`
}

// IndustryInfo describes a registry entry and whether its credential is present.
type IndustryInfo struct {
	Slug           string `json:"slug"`
	Industry       string `json:"industry"`
	Provider       string `json:"provider"`
	RequiresAPIKey bool   `json:"requires_api_key"`
	APIKeyEnv      string `json:"api_key_env,omitempty"`
	IsConfigured   bool   `json:"is_configured"`
}

// FetchError is a per-industry failure captured during a bulk fetch.
type FetchError struct {
	Slug       string `json:"slug"`
	StatusCode int    `json:"status_code"`
	Detail     string `json:"detail"`
}

// BulkResult aggregates a concurrent multi-industry fetch. Callers must
// inspect Errors even when the request as a whole succeeded.
type BulkResult struct {
	Results []IndustryNewsResult `json:"results"`
	Errors  []FetchError         `json:"errors"`
}
