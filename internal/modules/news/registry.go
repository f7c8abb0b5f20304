package news

import (
	"net/url"
	"strconv"
	"time"
)

// IndustryConfig binds one industry slug to an upstream provider. Params
// builds the query string from the resolved API key; Parse turns the raw
// response body into articles and never fails.
type IndustryConfig struct {
	Slug           string
	Industry       string
	Provider       string
	Endpoint       string
	RequiresAPIKey bool
	APIKeyEnv      string
	Timeout        time.Duration
	Params         func(apiKey string) url.Values
	Parse          func(body []byte) []Article
}

const defaultFetchTimeout = 10 * time.Second

// DefaultConfigs returns the built-in industry registry. Slugs are unique and
// the order here is the order list endpoints report.
func DefaultConfigs() []IndustryConfig {
	return []IndustryConfig{
		{
			Slug:           "technology",
			Industry:       "Technology",
			Provider:       "GNews",
			Endpoint:       "https://gnews.io/api/v4/top-headlines",
			RequiresAPIKey: true,
			APIKeyEnv:      "GNEWS_API_KEY",
			Params: func(apiKey string) url.Values {
				return url.Values{
					"topic":  {"technology"},
					"lang":   {"en"},
					"max":    {"10"},
					"apikey": {apiKey},
				}
			},
			Parse: parseGNews,
		},
		{
			Slug:           "finance",
			Industry:       "Finance",
			Provider:       "Alpha Vantage",
			Endpoint:       "https://www.alphavantage.co/query",
			RequiresAPIKey: true,
			APIKeyEnv:      "ALPHAVANTAGE_API_KEY",
			Params: func(apiKey string) url.Values {
				return url.Values{
					"function": {"NEWS_SENTIMENT"},
					"topics":   {"financial_markets"},
					"sort":     {"LATEST"},
					"limit":    {"10"},
					"apikey":   {apiKey},
				}
			},
			Parse: parseAlphaVantage,
		},
		{
			Slug:           "healthcare",
			Industry:       "Healthcare",
			Provider:       "NewsData.io",
			Endpoint:       "https://newsdata.io/api/1/news",
			RequiresAPIKey: true,
			APIKeyEnv:      "NEWSDATA_API_KEY",
			Params: func(apiKey string) url.Values {
				return url.Values{
					"category": {"health"},
					"language": {"en"},
					"apikey":   {apiKey},
				}
			},
			Parse: parseNewsData,
		},
		{
			Slug:     "energy",
			Industry: "Energy",
			Provider: "GDELT Project",
			Endpoint: "https://api.gdeltproject.org/api/v2/doc/doc",
			Params: func(string) url.Values {
				return url.Values{
					"query":      {"energy OR renewable energy OR oil market"},
					"mode":       {"ArtList"},
					"maxrecords": {strconv.Itoa(10)},
					"format":     {"json"},
					"sort":       {"DateDesc"},
				}
			},
			Parse: parseGDELT,
		},
		{
			Slug:           "retail",
			Industry:       "Retail",
			Provider:       "The Guardian Open Platform",
			Endpoint:       "https://content.guardianapis.com/search",
			RequiresAPIKey: true,
			APIKeyEnv:      "GUARDIAN_API_KEY",
			Params: func(apiKey string) url.Values {
				return url.Values{
					"section":     {"business"},
					"tag":         {"business/retail"},
					"order-by":    {"newest"},
					"page-size":   {"10"},
					"show-fields": {"trailText,headline"},
					"api-key":     {apiKey},
				}
			},
			Parse: parseGuardian,
		},
		{
			Slug:           "transportation",
			Industry:       "Transportation",
			Provider:       "NewsAPI.org",
			Endpoint:       "https://newsapi.org/v2/everything",
			RequiresAPIKey: true,
			APIKeyEnv:      "NEWSAPI_KEY",
			Params: func(apiKey string) url.Values {
				return url.Values{
					"q":        {"transportation OR logistics OR electric vehicle OR autonomous driving"},
					"language": {"en"},
					"sortBy":   {"publishedAt"},
					"pageSize": {"10"},
					"apiKey":   {apiKey},
				}
			},
			Parse: parseNewsAPI,
		},
	}
}
