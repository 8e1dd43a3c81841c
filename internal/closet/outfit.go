package closet

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"closet-backend/internal/models"
)

var (
	ErrNoItems              = errors.New("no items in closet")
	ErrNoEligibleCategories = errors.New("no items in any outfit category")
)

// Picker chooses an index in [0, n).
type Picker interface {
	IntN(n int) int
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.IntN(n) }

// GroupByCategory buckets items by category, keeping list order.
func GroupByCategory(items []models.ClosetItem) map[string][]models.ClosetItem {
	grouped := make(map[string][]models.ClosetItem)
	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	return grouped
}

// GenerateOutfit picks one item uniformly at random for every outfit slot
// that has candidates. Slots are independent; nothing is done to vary
// picks across calls or to match styles.
func GenerateOutfit(items []models.ClosetItem, picker Picker, now time.Time) (*models.Outfit, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	grouped := GroupByCategory(items)
	picks := make(map[string]models.ClosetItem)
	for _, slot := range models.OutfitSlots {
		options := grouped[slot]
		if len(options) == 0 {
			continue
		}
		picks[slot] = options[picker.IntN(len(options))]
	}

	if len(picks) == 0 {
		return nil, ErrNoEligibleCategories
	}

	return &models.Outfit{
		ID:        uuid.NewString(),
		CreatedAt: now,
		Items:     picks,
	}, nil
}
