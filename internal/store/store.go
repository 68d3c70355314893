// Package store persists fetched schema snapshots so models can be
// regenerated offline.
package store

import (
	"errors"

	"github.com/yourorg/kontentgen/pkg/types"
)

// ErrNotFound is returned when no snapshot matches a lookup.
var ErrNotFound = errors.New("snapshot not found")

type Store interface {
	SaveSnapshot(snap *types.Snapshot) (*types.SnapshotInfo, error)
	GetSnapshot(id string) (*types.Snapshot, error)
	LatestSnapshot(projectID string) (*types.Snapshot, *types.SnapshotInfo, error)
	ListSnapshots() ([]types.SnapshotInfo, error)
	DeleteSnapshot(id string) error

	Close() error
}
