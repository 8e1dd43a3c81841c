package closet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"closet-backend/internal/models"
)

var (
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidSeason   = errors.New("invalid season")
)

// Closet is one owner's item list. The list lives in memory and every
// change is written through to the store as a whole before it is kept.
type Closet struct {
	mu     sync.Mutex
	store  Store
	key    string
	items  []models.ClosetItem
	outfit *models.Outfit
	picker Picker
	now    func() time.Time
}

type Option func(*Closet)

func WithPicker(p Picker) Option {
	return func(c *Closet) { c.picker = p }
}

func WithClock(now func() time.Time) Option {
	return func(c *Closet) { c.now = now }
}

// Open loads the list stored under key. A missing key is an empty closet.
func Open(ctx context.Context, store Store, key string, opts ...Option) (*Closet, error) {
	c := &Closet{
		store:  store,
		key:    key,
		picker: globalPicker{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	raw, err := store.Get(ctx, key)
	switch {
	case errors.Is(err, ErrNotFound):
		c.items = []models.ClosetItem{}
	case err != nil:
		return nil, fmt.Errorf("failed to load closet: %w", err)
	default:
		if err := json.Unmarshal(raw, &c.items); err != nil {
			return nil, fmt.Errorf("failed to decode closet: %w", err)
		}
		if c.items == nil {
			c.items = []models.ClosetItem{}
		}
	}

	return c, nil
}

// Items returns a copy of the list, newest first.
func (c *Closet) Items() []models.ClosetItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.ClosetItem, len(c.items))
	copy(out, c.items)
	return out
}

// Add validates req, puts the new item at the head of the list and persists
// the list. If the write fails the list is left as it was.
func (c *Closet) Add(ctx context.Context, req models.AddItemRequest) (models.ClosetItem, error) {
	if !models.IsCategory(req.Category) {
		return models.ClosetItem{}, fmt.Errorf("%w: %q", ErrInvalidCategory, req.Category)
	}

	season := req.Season
	if season == "" {
		season = "All"
	}
	if !models.IsSeason(season) {
		return models.ClosetItem{}, fmt.Errorf("%w: %q", ErrInvalidSeason, season)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		color := req.Color
		if color == "" {
			color = "Item"
		}
		name = strings.TrimSpace(color + " " + req.Category)
	}

	item := models.ClosetItem{
		ID:        uuid.NewString(),
		Name:      name,
		Category:  req.Category,
		Color:     req.Color,
		Season:    season,
		Barcode:   strings.TrimSpace(req.Barcode),
		Notes:     strings.TrimSpace(req.Notes),
		ImageURI:  req.ImageURI,
		CreatedAt: c.now().UTC(),
		Product:   snapshot(req.Product),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]models.ClosetItem, 0, len(c.items)+1)
	next = append(next, item)
	next = append(next, c.items...)

	if err := c.flush(ctx, next); err != nil {
		return models.ClosetItem{}, err
	}
	c.items = next

	return item, nil
}

// GenerateOutfit builds a new outfit from the current list and keeps it as
// the latest one.
func (c *Closet) GenerateOutfit() (*models.Outfit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	outfit, err := GenerateOutfit(c.items, c.picker, c.now().UTC())
	if err != nil {
		return nil, err
	}
	c.outfit = outfit
	return outfit, nil
}

func (c *Closet) LatestOutfit() (*models.Outfit, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.outfit, c.outfit != nil
}

func (c *Closet) flush(ctx context.Context, items []models.ClosetItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode closet: %w", err)
	}
	if err := c.store.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("failed to save closet: %w", err)
	}
	return nil
}

func snapshot(p *models.ProductResult) *models.ProductSnapshot {
	if p == nil {
		return nil
	}
	return &models.ProductSnapshot{
		Name:        p.Name,
		Brand:       p.Brand,
		Price:       p.Price,
		PurchaseURL: p.URL,
		JANCode:     p.JANCode,
		Source:      p.Source,
	}
}
