package rakuten

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"closet-backend/internal/brands"
	"closet-backend/internal/models"
)

const (
	searchHits   = 10
	fashionGenre = "100371"
)

// Client talks to the Rakuten Ichiba Item Search API. It serves both the
// keyword search and the JAN code lookup.
type Client struct {
	baseURL    string
	appID      string
	brands     []string
	httpClient *http.Client
}

type searchResponse struct {
	Items []struct {
		Item item `json:"Item"`
	} `json:"Items"`
}

type item struct {
	ItemName        string  `json:"itemName"`
	ItemPrice       float64 `json:"itemPrice"`
	ItemURL         string  `json:"itemUrl"`
	ItemCode        string  `json:"itemCode"`
	ShopName        string  `json:"shopName"`
	MediumImageURLs []struct {
		ImageURL string `json:"imageUrl"`
	} `json:"mediumImageUrls"`
}

func NewClient(baseURL, appID string, dict *brands.Dictionary) *Client {
	return &Client{
		baseURL: baseURL,
		appID:   appID,
		brands:  dict.Rakuten,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Name() string {
	return models.SourceRakuten
}

func (c *Client) Configured() bool {
	return c.appID != ""
}

// Search runs a keyword search in the fashion genre, most reviewed first.
func (c *Client) Search(ctx context.Context, query string) ([]models.ProductResult, error) {
	if !c.Configured() {
		log.Println("Warning: RAKUTEN_APP_ID not configured")
		return nil, nil
	}

	params := url.Values{}
	params.Set("applicationId", c.appID)
	params.Set("keyword", query)
	params.Set("hits", fmt.Sprint(searchHits))
	params.Set("genreId", fashionGenre)
	params.Set("sort", "-reviewCount")

	result, err := c.get(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("rakuten search failed: %w", err)
	}

	products := make([]models.ProductResult, 0, len(result.Items))
	for _, wrapper := range result.Items {
		p := c.toProduct(wrapper.Item)
		if wrapper.Item.ItemCode != "" {
			code := wrapper.Item.ItemCode
			p.JANCode = &code
		}
		products = append(products, p)
	}

	return products, nil
}

// LookupBarcode returns the first listing matching a JAN code, or nil when
// nothing matches.
func (c *Client) LookupBarcode(ctx context.Context, barcode string) (*models.ProductResult, error) {
	if !c.Configured() {
		log.Println("Warning: RAKUTEN_APP_ID not configured")
		return nil, nil
	}

	params := url.Values{}
	params.Set("applicationId", c.appID)
	params.Set("keyword", barcode)
	params.Set("hits", "1")

	result, err := c.get(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("rakuten barcode lookup failed: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, nil
	}

	p := c.toProduct(result.Items[0].Item)
	code := barcode
	p.JANCode = &code
	return &p, nil
}

func (c *Client) get(ctx context.Context, params url.Values) (*searchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

func (c *Client) toProduct(it item) models.ProductResult {
	name := it.ItemName
	if name == "" {
		name = "Unknown product"
	}

	price := it.ItemPrice
	p := models.ProductResult{
		Name:   name,
		Brand:  c.brandFor(it),
		Price:  &price,
		URL:    it.ItemURL,
		Source: models.SourceRakuten,
	}

	if len(it.MediumImageURLs) > 0 && it.MediumImageURLs[0].ImageURL != "" {
		img := it.MediumImageURLs[0].ImageURL
		p.ImageURL = &img
	}

	return p
}

// brandFor prefers a known brand in the title, then a 【bracketed】 tag,
// then the shop name.
func (c *Client) brandFor(it item) *string {
	if brand, ok := brands.Match(it.ItemName, c.brands); ok {
		return &brand
	}
	if brand, ok := brands.Bracketed(it.ItemName); ok {
		return &brand
	}
	if it.ShopName != "" {
		shop := it.ShopName
		return &shop
	}
	return nil
}
