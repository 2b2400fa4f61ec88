package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iamasit07/connect-four/internal/domain"
)

const snapshotKeyPrefix = "game:"

// SnapshotStore keeps the latest state of every live game as JSON.
type SnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshotStore(client *redis.Client, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{client: client, ttl: ttl}
}

func snapshotKey(gameID string) string {
	return snapshotKeyPrefix + gameID
}

func (s *SnapshotStore) SaveSnapshot(ctx context.Context, snapshot domain.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return s.client.Set(ctx, snapshotKey(snapshot.GameID), data, s.ttl).Err()
}

// GetSnapshot returns nil when the game has no snapshot.
func (s *SnapshotStore) GetSnapshot(ctx context.Context, gameID string) (*domain.Snapshot, error) {
	data, err := s.client.Get(ctx, snapshotKey(gameID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}

func (s *SnapshotStore) DeleteSnapshot(ctx context.Context, gameID string) error {
	return s.client.Del(ctx, snapshotKey(gameID)).Err()
}
