// Package search merges product candidates from the barcode catalog and the
// text search vendors into one deduplicated, ranked list.
package search

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"closet-backend/internal/metrics"
	"closet-backend/internal/models"
)

const (
	// MaxResults caps the ranked list returned to the client.
	MaxResults = 10

	dedupeKeyLength = 30
)

var ErrInvalidRequest = errors.New("query or barcode is required")

type Request struct {
	Query   string
	Barcode string
}

// TextSource is a vendor keyword search. Each source applies its own result
// cap and returns no results, not an error, when it has no credentials.
type TextSource interface {
	Name() string
	Search(ctx context.Context, query string) ([]models.ProductResult, error)
}

// BarcodeSource resolves a JAN code to at most one product.
type BarcodeSource interface {
	Name() string
	LookupBarcode(ctx context.Context, barcode string) (*models.ProductResult, error)
}

type Aggregator struct {
	barcode BarcodeSource
	text    []TextSource
	metrics *metrics.Collector
}

// NewAggregator builds an aggregator. Text sources are merged in the order
// given. barcode may be nil, in which case barcodes are ignored.
func NewAggregator(barcode BarcodeSource, text []TextSource, collector *metrics.Collector) *Aggregator {
	return &Aggregator{
		barcode: barcode,
		text:    text,
		metrics: collector,
	}
}

// Search looks up the barcode (if any), fans the query out to every text
// source at once, waits for all of them, then dedupes, ranks and truncates.
// A failing source contributes nothing; only an empty request is an error.
func (a *Aggregator) Search(ctx context.Context, req Request) ([]models.ProductResult, error) {
	query := strings.TrimSpace(req.Query)
	barcode := strings.TrimSpace(req.Barcode)
	if query == "" && barcode == "" {
		return nil, ErrInvalidRequest
	}

	var pool []models.ProductResult

	if barcode != "" && a.barcode != nil {
		if p := a.lookupBarcode(ctx, barcode); p != nil {
			pool = append(pool, *p)
		}
	}

	if query != "" {
		results := make([][]models.ProductResult, len(a.text))

		var g errgroup.Group
		for i, source := range a.text {
			g.Go(func() error {
				results[i] = a.searchSource(ctx, source, query)
				return nil
			})
		}
		g.Wait()

		for _, r := range results {
			pool = append(pool, r...)
		}
	}

	ranked := Rank(Dedupe(pool))
	if len(ranked) > MaxResults {
		ranked = ranked[:MaxResults]
	}

	a.metrics.ObserveSearchResults(len(ranked))
	return ranked, nil
}

func (a *Aggregator) lookupBarcode(ctx context.Context, barcode string) *models.ProductResult {
	start := time.Now()
	p, err := a.barcode.LookupBarcode(ctx, barcode)
	if err != nil {
		log.Printf("Warning: %s barcode lookup failed: %v", a.barcode.Name(), err)
		a.metrics.ObserveSource(a.barcode.Name()+"_barcode", "error", time.Since(start))
		return nil
	}

	outcome := "ok"
	if p == nil {
		outcome = "empty"
	}
	a.metrics.ObserveSource(a.barcode.Name()+"_barcode", outcome, time.Since(start))
	return p
}

func (a *Aggregator) searchSource(ctx context.Context, source TextSource, query string) []models.ProductResult {
	start := time.Now()
	products, err := source.Search(ctx, query)
	if err != nil {
		log.Printf("Warning: %s search failed: %v", source.Name(), err)
		a.metrics.ObserveSource(source.Name(), "error", time.Since(start))
		return nil
	}

	outcome := "ok"
	if len(products) == 0 {
		outcome = "empty"
	}
	a.metrics.ObserveSource(source.Name(), outcome, time.Since(start))
	return products
}

// DedupeKey identifies a candidate by the lowercased first 30 characters of
// its name plus its source tag. Different products sharing a name prefix on
// the same source collide on purpose.
func DedupeKey(p models.ProductResult) string {
	name := []rune(strings.ToLower(p.Name))
	if len(name) > dedupeKeyLength {
		name = name[:dedupeKeyLength]
	}
	return string(name) + "-" + p.Source
}

// Dedupe keeps the first product seen for each DedupeKey.
func Dedupe(products []models.ProductResult) []models.ProductResult {
	seen := make(map[string]struct{}, len(products))
	out := make([]models.ProductResult, 0, len(products))
	for _, p := range products {
		key := DedupeKey(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Rank moves priced products ahead of unpriced ones. The sort is stable, so
// order inside each group is untouched.
func Rank(products []models.ProductResult) []models.ProductResult {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].HasPrice() && !products[j].HasPrice()
	})
	return products
}
