package rakuten

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"closet-backend/internal/brands"
	"closet-backend/internal/models"
)

const searchBody = `{
  "Items": [
    {"Item": {
      "itemName": "【UNIQLO】エアリズムコットンT",
      "itemPrice": 1990,
      "itemUrl": "https://item.rakuten.co.jp/shop/a",
      "itemCode": "shop:10001",
      "shopName": "Shop A",
      "mediumImageUrls": [{"imageUrl": "https://img.rakuten.co.jp/a.jpg"}]
    }},
    {"Item": {
      "itemName": "【Somebrand】リネンシャツ",
      "itemUrl": "https://item.rakuten.co.jp/shop/b",
      "shopName": "Shop B"
    }},
    {"Item": {
      "itemName": "無地 ワイドパンツ",
      "itemPrice": 3200,
      "itemUrl": "https://item.rakuten.co.jp/shop/c",
      "shopName": "Shop C",
      "mediumImageUrls": []
    }},
    {"Item": {}}
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-app", brands.Default())
}

func TestClient_Search(t *testing.T) {
	var query map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{}
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}
		w.Write([]byte(searchBody))
	})

	products, err := client.Search(context.Background(), "シャツ")
	require.NoError(t, err)
	require.Len(t, products, 4)

	assert.Equal(t, "test-app", query["applicationId"])
	assert.Equal(t, "シャツ", query["keyword"])
	assert.Equal(t, "10", query["hits"])
	assert.Equal(t, "100371", query["genreId"])
	assert.Equal(t, "-reviewCount", query["sort"])

	first := products[0]
	assert.Equal(t, models.SourceRakuten, first.Source)
	assert.Equal(t, "UNIQLO", *first.Brand)
	assert.Equal(t, 1990.0, *first.Price)
	assert.Equal(t, "https://img.rakuten.co.jp/a.jpg", *first.ImageURL)
	assert.Equal(t, "shop:10001", *first.JANCode)

	// Unknown brand falls back to the bracketed tag, missing price to zero.
	assert.Equal(t, "Somebrand", *products[1].Brand)
	assert.Equal(t, 0.0, *products[1].Price)
	assert.False(t, products[1].HasPrice())
	assert.Nil(t, products[1].ImageURL)
	assert.Nil(t, products[1].JANCode)

	// No brand, no bracket: shop name.
	assert.Equal(t, "Shop C", *products[2].Brand)

	assert.Equal(t, "Unknown product", products[3].Name)
	assert.Nil(t, products[3].Brand)
}

func TestClient_LookupBarcode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "4549738000000", r.URL.Query().Get("keyword"))
		assert.Equal(t, "1", r.URL.Query().Get("hits"))
		assert.Empty(t, r.URL.Query().Get("genreId"))
		w.Write([]byte(searchBody))
	})

	product, err := client.LookupBarcode(context.Background(), "4549738000000")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "4549738000000", *product.JANCode)
	assert.Equal(t, "【UNIQLO】エアリズムコットンT", product.Name)
}

func TestClient_LookupBarcode_NoMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Items": []}`))
	})

	product, err := client.LookupBarcode(context.Background(), "000")
	assert.NoError(t, err)
	assert.Nil(t, product)
}

func TestClient_Search_Non2xx(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"too_many_requests"}`))
	})

	products, err := client.Search(context.Background(), "shirt")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
	assert.Nil(t, products)
}

func TestClient_Search_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	})

	_, err := client.Search(context.Background(), "shirt")
	assert.Error(t, err)
}

func TestClient_NotConfigured(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient(server.URL, "", brands.Default())

	products, err := client.Search(context.Background(), "shirt")
	assert.NoError(t, err)
	assert.Empty(t, products)

	product, err := client.LookupBarcode(context.Background(), "123")
	assert.NoError(t, err)
	assert.Nil(t, product)

	assert.False(t, called)
}
