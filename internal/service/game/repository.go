package game

import (
	"context"

	"github.com/iamasit07/connect-four/internal/domain"
)

type ConnectionManagerInterface interface {
	SendMessage(userID int64, message domain.ServerMessage) error
}

type GameRepository interface {
	SaveGame(ctx context.Context, record domain.GameRecord) error
}

// SnapshotStore publishes live game state for spectators. It is optional.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snapshot domain.Snapshot) error
	DeleteSnapshot(ctx context.Context, gameID string) error
}
