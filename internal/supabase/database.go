package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"closet-backend/internal/closet"
)

type kvRow struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// KVStore keeps closet lists in a PostgREST table with key, value (jsonb)
// and updated_at columns.
type KVStore struct {
	client *Client
	table  string
}

func NewKVStore(client *Client, table string) *KVStore {
	return &KVStore{client: client, table: table}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var rows []kvRow
	_, err := s.client.Supabase.
		From(s.table).
		Select("key,value", "", false).
		Eq("key", key).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	if len(rows) == 0 {
		return nil, closet.ErrNotFound
	}
	return []byte(rows[0].Value), nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("failed to write %s: value is not JSON", key)
	}

	row := kvRow{
		Key:       key,
		Value:     json.RawMessage(value),
		UpdatedAt: time.Now().UTC(),
	}
	_, _, err := s.client.Supabase.
		From(s.table).
		Upsert(row, "key", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
