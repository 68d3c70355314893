package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/yourorg/kontentgen/pkg/types"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	s := &SQLiteStore{db: db}
	if err := s.Init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Init() error {
	if _, err := s.db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		return err
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL,
			project_name TEXT NOT NULL,
			type_count INTEGER NOT NULL DEFAULT 0,
			snippet_count INTEGER NOT NULL DEFAULT 0,
			taxonomy_count INTEGER NOT NULL DEFAULT 0,
			payload TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_project ON snapshots(project_id, created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveSnapshot stores snap under a new id.
func (s *SQLiteStore) SaveSnapshot(snap *types.Snapshot) (*types.SnapshotInfo, error) {
	if snap == nil {
		return nil, errors.New("snapshot is nil")
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	info := &types.SnapshotInfo{
		ID:            uuid.NewString(),
		ProjectID:     snap.ProjectID,
		TypeCount:     len(snap.Types),
		SnippetCount:  len(snap.Snippets),
		TaxonomyCount: len(snap.Taxonomies),
		CreatedAt:     time.Now().UTC(),
	}
	if snap.Project != nil {
		info.ProjectName = snap.Project.Name
	}
	_, err = s.db.Exec(`INSERT INTO snapshots(id,project_id,project_name,type_count,snippet_count,taxonomy_count,payload,created_at) VALUES(?,?,?,?,?,?,?,?)`,
		info.ID, info.ProjectID, info.ProjectName, info.TypeCount, info.SnippetCount, info.TaxonomyCount, string(payload), info.CreatedAt)
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (s *SQLiteStore) GetSnapshot(id string) (*types.Snapshot, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM snapshots WHERE id=?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return decodeSnapshot(payload)
}

// LatestSnapshot returns the most recently stored snapshot of a project.
func (s *SQLiteStore) LatestSnapshot(projectID string) (*types.Snapshot, *types.SnapshotInfo, error) {
	row := s.db.QueryRow(`SELECT id,project_id,project_name,type_count,snippet_count,taxonomy_count,created_at,payload FROM snapshots WHERE project_id=? ORDER BY created_at DESC, rowid DESC LIMIT 1`, projectID)
	var info types.SnapshotInfo
	var payload string
	err := row.Scan(&info.ID, &info.ProjectID, &info.ProjectName, &info.TypeCount, &info.SnippetCount, &info.TaxonomyCount, &info.CreatedAt, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("%w: project %s", ErrNotFound, projectID)
	}
	if err != nil {
		return nil, nil, err
	}
	snap, err := decodeSnapshot(payload)
	if err != nil {
		return nil, nil, err
	}
	return snap, &info, nil
}

func (s *SQLiteStore) ListSnapshots() ([]types.SnapshotInfo, error) {
	rows, err := s.db.Query(`SELECT id,project_id,project_name,type_count,snippet_count,taxonomy_count,created_at FROM snapshots ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []types.SnapshotInfo
	for rows.Next() {
		var info types.SnapshotInfo
		if err := rows.Scan(&info.ID, &info.ProjectID, &info.ProjectName, &info.TypeCount, &info.SnippetCount, &info.TaxonomyCount, &info.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteSnapshot(id string) error {
	res, err := s.db.Exec(`DELETE FROM snapshots WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return errors.New("store is nil")
	}
	return s.db.Close()
}

func decodeSnapshot(payload string) (*types.Snapshot, error) {
	var snap types.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}
