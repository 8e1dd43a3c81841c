package closet

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"closet-backend/internal/models"
)

type failingStore struct {
	*MemoryStore
	failSet bool
	failGet bool
}

func (s *failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.failGet {
		return nil, errors.New("disk unavailable")
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if s.failSet {
		return errors.New("disk full")
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func TestOpen_MissingKeyIsEmpty(t *testing.T) {
	c, err := Open(context.Background(), NewMemoryStore(), "k")

	require.NoError(t, err)
	assert.Empty(t, c.Items())
}

func TestItems_EmptyClosetMarshalsAsArray(t *testing.T) {
	c, err := Open(context.Background(), NewMemoryStore(), "k")
	require.NoError(t, err)

	encoded, err := json.Marshal(models.ItemsResponse{Items: c.Items()})

	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(encoded))
}

func TestItems_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	c, err := Open(ctx, NewMemoryStore(), "k")
	require.NoError(t, err)
	_, err = c.Add(ctx, models.AddItemRequest{Name: "Tee", Category: "Top"})
	require.NoError(t, err)

	items := c.Items()
	items[0].Name = "changed"

	assert.Equal(t, "Tee", c.Items()[0].Name)
}

func TestOpen_LoadError(t *testing.T) {
	_, err := Open(context.Background(), &failingStore{MemoryStore: NewMemoryStore(), failGet: true}, "k")

	assert.Error(t, err)
}

func TestOpen_CorruptValue(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "k", []byte("not json")))

	_, err := Open(context.Background(), store, "k")

	assert.Error(t, err)
}

func TestAdd_WritesThroughNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	c, err := Open(ctx, store, "k", WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	first, err := c.Add(ctx, models.AddItemRequest{Name: "  Oxford shirt ", Category: "Top", Color: "White"})
	require.NoError(t, err)
	second, err := c.Add(ctx, models.AddItemRequest{Category: "Shoes", Season: "Summer"})
	require.NoError(t, err)

	assert.Equal(t, "Oxford shirt", first.Name)
	assert.Equal(t, "All", first.Season)
	assert.Equal(t, now, first.CreatedAt)
	assert.NotEqual(t, first.ID, second.ID)

	reopened, err := Open(ctx, store, "k")
	require.NoError(t, err)
	items := reopened.Items()
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
	assert.Equal(t, "Summer", items[0].Season)
}

func TestAdd_DefaultName(t *testing.T) {
	c, err := Open(context.Background(), NewMemoryStore(), "k")
	require.NoError(t, err)

	withColor, err := c.Add(context.Background(), models.AddItemRequest{Category: "Bottom", Color: "Navy"})
	require.NoError(t, err)
	withoutColor, err := c.Add(context.Background(), models.AddItemRequest{Name: "   ", Category: "Accessory"})
	require.NoError(t, err)

	assert.Equal(t, "Navy Bottom", withColor.Name)
	assert.Equal(t, "Item Accessory", withoutColor.Name)
}

func TestAdd_InvalidCategory(t *testing.T) {
	c, err := Open(context.Background(), NewMemoryStore(), "k")
	require.NoError(t, err)

	for _, category := range []string{"", "Hat", "top"} {
		_, err := c.Add(context.Background(), models.AddItemRequest{Category: category})
		assert.ErrorIs(t, err, ErrInvalidCategory)
	}
	assert.Empty(t, c.Items())
}

func TestAdd_InvalidSeason(t *testing.T) {
	c, err := Open(context.Background(), NewMemoryStore(), "k")
	require.NoError(t, err)

	_, err = c.Add(context.Background(), models.AddItemRequest{Category: "Top", Season: "Monsoon"})

	assert.ErrorIs(t, err, ErrInvalidSeason)
	assert.Empty(t, c.Items())
}

func TestAdd_DuplicatesAllowed(t *testing.T) {
	c, err := Open(context.Background(), NewMemoryStore(), "k")
	require.NoError(t, err)

	req := models.AddItemRequest{Name: "Tee", Category: "Top", Barcode: "4900000000000"}
	_, err = c.Add(context.Background(), req)
	require.NoError(t, err)
	_, err = c.Add(context.Background(), req)
	require.NoError(t, err)

	assert.Len(t, c.Items(), 2)
}

func TestAdd_ProductSnapshot(t *testing.T) {
	c, err := Open(context.Background(), NewMemoryStore(), "k")
	require.NoError(t, err)

	brand, price, jan := "UNIQLO", 1990.0, "4549738000000"
	added, err := c.Add(context.Background(), models.AddItemRequest{
		Category: "Top",
		Product: &models.ProductResult{
			Name:    "エアリズムT",
			Brand:   &brand,
			Price:   &price,
			URL:     "https://item.rakuten.co.jp/x",
			Source:  models.SourceRakuten,
			JANCode: &jan,
		},
	})

	require.NoError(t, err)
	require.NotNil(t, added.Product)
	assert.Equal(t, "https://item.rakuten.co.jp/x", added.Product.PurchaseURL)
	assert.Equal(t, "rakuten", added.Product.Source)
	assert.Equal(t, jan, *added.Product.JANCode)
}

func TestAdd_FailedWriteRollsBack(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{MemoryStore: NewMemoryStore()}
	c, err := Open(ctx, store, "k")
	require.NoError(t, err)

	_, err = c.Add(ctx, models.AddItemRequest{Category: "Top"})
	require.NoError(t, err)

	store.failSet = true
	_, err = c.Add(ctx, models.AddItemRequest{Category: "Shoes"})
	assert.Error(t, err)
	assert.Len(t, c.Items(), 1)

	store.failSet = false
	_, err = c.Add(ctx, models.AddItemRequest{Category: "Bottom"})
	require.NoError(t, err)

	reopened, err := Open(ctx, store, "k")
	require.NoError(t, err)
	assert.Len(t, reopened.Items(), 2)
}

func TestCloset_GenerateOutfitKeepsLatest(t *testing.T) {
	ctx := context.Background()
	c, err := Open(ctx, NewMemoryStore(), "k", WithPicker(fixedPicker{}))
	require.NoError(t, err)

	_, ok := c.LatestOutfit()
	assert.False(t, ok)

	_, err = c.GenerateOutfit()
	assert.ErrorIs(t, err, ErrNoItems)

	top, err := c.Add(ctx, models.AddItemRequest{Category: "Top", Color: "Black"})
	require.NoError(t, err)

	outfit, err := c.GenerateOutfit()
	require.NoError(t, err)
	assert.Equal(t, top, outfit.Items["Top"])

	latest, ok := c.LatestOutfit()
	require.True(t, ok)
	assert.Equal(t, outfit.ID, latest.ID)

	again, err := c.GenerateOutfit()
	require.NoError(t, err)
	latest, _ = c.LatestOutfit()
	assert.Equal(t, again.ID, latest.ID)
}

func TestRegistry_CachesPerOwner(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	r := NewRegistry(store)

	alice, err := r.For(ctx, "alice")
	require.NoError(t, err)
	again, err := r.For(ctx, "alice")
	require.NoError(t, err)
	bob, err := r.For(ctx, "bob")
	require.NoError(t, err)

	assert.Same(t, alice, again)
	assert.NotSame(t, alice, bob)

	_, err = alice.Add(ctx, models.AddItemRequest{Category: "Top"})
	require.NoError(t, err)
	assert.Empty(t, bob.Items())

	_, err = store.Get(ctx, StorageKey+":alice")
	assert.NoError(t, err)
	_, err = store.Get(ctx, StorageKey+":bob")
	assert.ErrorIs(t, err, ErrNotFound)
}

// blockingStore holds reads of one key until release is closed.
type blockingStore struct {
	*MemoryStore
	blockKey string
	started  chan struct{}
	release  chan struct{}
}

func (s *blockingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == s.blockKey {
		close(s.started)
		<-s.release
	}
	return s.MemoryStore.Get(ctx, key)
}

func TestRegistry_SlowOwnerDoesNotBlockOthers(t *testing.T) {
	ctx := context.Background()
	store := &blockingStore{
		MemoryStore: NewMemoryStore(),
		blockKey:    StorageKey + ":alice",
		started:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	r := NewRegistry(store)

	aliceDone := make(chan *Closet)
	go func() {
		c, err := r.For(ctx, "alice")
		assert.NoError(t, err)
		aliceDone <- c
	}()
	<-store.started

	bobDone := make(chan error)
	go func() {
		_, err := r.For(ctx, "bob")
		bobDone <- err
	}()

	select {
	case err := <-bobDone:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("opening bob's closet waited on alice's read")
	}

	close(store.release)
	alice := <-aliceDone
	again, err := r.For(ctx, "alice")
	require.NoError(t, err)
	assert.Same(t, alice, again)
}

func TestRegistry_ConcurrentFirstUseSharesCloset(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(NewMemoryStore())

	results := make(chan *Closet, 8)
	for i := 0; i < 8; i++ {
		go func() {
			c, err := r.For(ctx, "alice")
			assert.NoError(t, err)
			results <- c
		}()
	}

	first := <-results
	for i := 1; i < 8; i++ {
		assert.Same(t, first, <-results)
	}
}
