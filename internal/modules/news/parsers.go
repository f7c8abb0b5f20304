package news

import "encoding/json"

// Per-provider response parsers. Each one tolerates missing fields and
// returns nil when the body is not the shape it expects; a malformed
// upstream payload degrades to an empty article list, not an error.

func parseGNews(body []byte) []Article {
	var payload struct {
		Articles []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
			PublishedAt string `json:"publishedAt"`
			Source      struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}
	articles := make([]Article, 0, len(payload.Articles))
	for _, item := range payload.Articles {
		articles = append(articles, Article{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			PublishedAt: item.PublishedAt,
			Source:      item.Source.Name,
		})
	}
	return articles
}

func parseAlphaVantage(body []byte) []Article {
	var payload struct {
		Feed []struct {
			Title         string `json:"title"`
			Summary       string `json:"summary"`
			URL           string `json:"url"`
			TimePublished string `json:"time_published"`
			Source        string `json:"source"`
		} `json:"feed"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}
	articles := make([]Article, 0, len(payload.Feed))
	for _, item := range payload.Feed {
		articles = append(articles, Article{
			Title:       item.Title,
			Description: item.Summary,
			URL:         item.URL,
			PublishedAt: item.TimePublished,
			Source:      item.Source,
		})
	}
	if len(articles) > 10 {
		articles = articles[:10]
	}
	return articles
}

func parseNewsData(body []byte) []Article {
	var payload struct {
		Results []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Content     string `json:"content"`
			Link        string `json:"link"`
			PubDate     string `json:"pubDate"`
			SourceID    string `json:"source_id"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}
	articles := make([]Article, 0, len(payload.Results))
	for _, item := range payload.Results {
		description := item.Description
		if description == "" {
			description = item.Content
		}
		articles = append(articles, Article{
			Title:       item.Title,
			Description: description,
			URL:         item.Link,
			PublishedAt: item.PubDate,
			Source:      item.SourceID,
		})
	}
	return articles
}

func parseGDELT(body []byte) []Article {
	var payload struct {
		Articles []struct {
			Title            string `json:"title"`
			SeenDate         string `json:"seendate"`
			URL              string `json:"url"`
			SourceCommonName string `json:"sourceCommonName"`
			SourceCountry    string `json:"sourceCountry"`
		} `json:"articles"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}
	articles := make([]Article, 0, len(payload.Articles))
	for _, item := range payload.Articles {
		source := item.SourceCommonName
		if source == "" {
			source = item.SourceCountry
		}
		articles = append(articles, Article{
			Title:       item.Title,
			Description: item.SeenDate,
			URL:         item.URL,
			PublishedAt: item.SeenDate,
			Source:      source,
		})
	}
	return articles
}

func parseGuardian(body []byte) []Article {
	var payload struct {
		Response struct {
			Results []struct {
				WebTitle           string `json:"webTitle"`
				WebURL             string `json:"webUrl"`
				WebPublicationDate string `json:"webPublicationDate"`
				Fields             struct {
					TrailText string `json:"trailText"`
					Headline  string `json:"headline"`
				} `json:"fields"`
			} `json:"results"`
		} `json:"response"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}
	articles := make([]Article, 0, len(payload.Response.Results))
	for _, item := range payload.Response.Results {
		description := item.Fields.TrailText
		if description == "" {
			description = item.Fields.Headline
		}
		articles = append(articles, Article{
			Title:       item.WebTitle,
			Description: description,
			URL:         item.WebURL,
			PublishedAt: item.WebPublicationDate,
			Source:      "The Guardian",
		})
	}
	return articles
}

func parseNewsAPI(body []byte) []Article {
	var payload struct {
		Articles []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
			PublishedAt string `json:"publishedAt"`
			Source      struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}
	articles := make([]Article, 0, len(payload.Articles))
	for _, item := range payload.Articles {
		articles = append(articles, Article{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			PublishedAt: item.PublishedAt,
			Source:      item.Source.Name,
		})
	}
	return articles
}
