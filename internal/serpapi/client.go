package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"closet-backend/internal/brands"
	"closet-backend/internal/models"
)

const maxResults = 5

// Client queries Google Shopping through SerpApi.
type Client struct {
	baseURL    string
	apiKey     string
	brands     []string
	httpClient *http.Client
}

type shoppingResponse struct {
	ShoppingResults []shoppingResult `json:"shopping_results"`
}

type shoppingResult struct {
	Title          string `json:"title"`
	Source         string `json:"source"`
	Link           string `json:"link"`
	Thumbnail      string `json:"thumbnail"`
	ExtractedPrice any    `json:"extracted_price"`
}

var (
	priceNoise  = strings.NewReplacer(",", "", "¥", "", "$", "")
	priceNumber = regexp.MustCompile(`\d+(?:\.\d+)?|\.\d+`)
)

func NewClient(baseURL, apiKey string, dict *brands.Dictionary) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		brands:  dict.SerpAPI,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Name() string {
	return models.SourceSerpAPI
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Search returns at most five Google Shopping results for query, scoped to
// the Japanese storefront.
func (c *Client) Search(ctx context.Context, query string) ([]models.ProductResult, error) {
	if !c.Configured() {
		log.Println("Warning: SERPAPI_KEY not configured")
		return nil, nil
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("engine", "google_shopping")
	params.Set("q", query)
	params.Set("gl", "jp")
	params.Set("hl", "ja")

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpapi search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("serpapi search failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result shoppingResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := result.ShoppingResults
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	products := make([]models.ProductResult, 0, len(results))
	for _, r := range results {
		products = append(products, c.toProduct(r))
	}

	return products, nil
}

func (c *Client) toProduct(r shoppingResult) models.ProductResult {
	name := r.Title
	if name == "" {
		name = "Unknown product"
	}

	brandSource := r.Source
	if brandSource == "" {
		brandSource = r.Title
	}

	p := models.ProductResult{
		Name:   name,
		Price:  ParsePrice(r.ExtractedPrice),
		URL:    r.Link,
		Source: models.SourceSerpAPI,
	}
	if brand, ok := brands.Match(brandSource, c.brands); ok {
		p.Brand = &brand
	}
	if r.Thumbnail != "" {
		thumb := r.Thumbnail
		p.ImageURL = &thumb
	}

	return p
}

// ParsePrice accepts the decoded extracted_price value. Numbers pass
// through; strings like "¥1,990" have currency noise removed and the first
// number parsed. Anything else is an unknown price.
func ParsePrice(value any) *float64 {
	switch v := value.(type) {
	case float64:
		return &v
	case string:
		m := priceNumber.FindString(priceNoise.Replace(v))
		if m == "" {
			return nil
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}
