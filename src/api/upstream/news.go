// Package upstream holds clients for the third-party APIs the site proxies.
// Every client carries a bounded http.Client timeout; a slow upstream is a
// soft failure, never a hung request.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultNewsQuery is the environment-themed search used when the caller
// supplies no query of its own.
const DefaultNewsQuery = `"çevre" OR "doğa" OR "ekoloji" OR "sürdürülebilirlik" OR "iklim" OR "çevresel etkiler" OR "karbon ayak izi" OR "yenilenebilir enerji" OR "biyoçeşitlilik" OR "ekosistem" OR "küresel ısınma" OR "iklim değişikliği" OR "çevre koruma" OR "çevre bilinci" OR "doğal yaşam" OR "yeşil enerji" OR "çevre politikaları" OR "çevre felaketleri" OR "sıcaklık artışı" OR "sera gazları" OR "karbon emisyonu" OR "yangın" OR "buzullar" OR "iklim krizi"`

// newsBlacklist drops off-topic articles that match the broad search terms.
var newsBlacklist = []string{
	"bitcoin", "kripto", "btc", "borsa", "dolar", "transfer", "gol", "spor",
	"araba", "futbol", "siyaset", "suç", "cinayet", "ekonomi", "yatırım",
	"banka", "enflasyon", "mahkeme",
}

type Article struct {
	Source      json.RawMessage `json:"source"`
	Author      string          `json:"author"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	URL         string          `json:"url"`
	URLToImage  string          `json:"urlToImage"`
	PublishedAt string          `json:"publishedAt"`
	Content     string          `json:"content"`
}

type NewsResponse struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
}

type News struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewNews(apiKey, baseURL string) *News {
	if baseURL == "" {
		baseURL = "https://newsapi.org/v2"
	}
	return &News{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Search runs the everything query and filters blacklisted topics out of the
// result before returning it.
func (n *News) Search(ctx context.Context, q string) (*NewsResponse, error) {
	if q == "" {
		q = DefaultNewsQuery
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("language", "tr")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", "20")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/everything?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", n.apiKey)

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi: status %d", resp.StatusCode)
	}

	var out NewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.Articles == nil {
		return nil, fmt.Errorf("newsapi: malformed response")
	}

	kept := out.Articles[:0]
	for _, a := range out.Articles {
		if !blacklisted(a) {
			kept = append(kept, a)
		}
	}
	out.Articles = kept
	out.TotalResults = len(kept)
	return &out, nil
}

func blacklisted(a Article) bool {
	text := strings.ToLower(a.Title + " " + a.Description)
	for _, word := range newsBlacklist {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
