package store

import (
	"context"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"docengine/delta"
)

// Snapshot is a GORM row holding a document's canonical Delta JSON at
// a point in time, mirroring the gateway copy's mysql_gorm.go wiring
// pattern (gorm.Open(mysql.Open(dsn), ...)) applied to this engine's
// own persistence format.
type Snapshot struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	DocID     string `gorm:"column:doc_id;index"`
	Revision  uint64 `gorm:"column:revision"`
	DeltaJSON []byte `gorm:"column:delta_json;type:json"`
	CreatedAt time.Time
}

func (Snapshot) TableName() string { return "document_snapshots" }

// SnapshotStore persists and retrieves Snapshot rows via gorm.
type SnapshotStore struct{ db *gorm.DB }

// OpenSnapshotStore opens a MySQL connection through gorm.io/driver/mysql
// and auto-migrates the snapshot table.
func OpenSnapshotStore(dsn string) (*SnapshotStore, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return nil, err
	}
	return &SnapshotStore{db: db}, nil
}

// NewSnapshotStore wraps an already-opened *gorm.DB, for callers that
// share one connection across stores.
func NewSnapshotStore(db *gorm.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Save persists the given Delta as the latest snapshot of docID at
// revision.
func (s *SnapshotStore) Save(ctx context.Context, docID string, revision uint64, d delta.Delta) error {
	raw, err := d.ToJSON()
	if err != nil {
		return err
	}
	row := &Snapshot{DocID: docID, Revision: revision, DeltaJSON: raw}
	return s.db.WithContext(ctx).Create(row).Error
}

// Latest returns the most recent snapshot's Delta for docID.
func (s *SnapshotStore) Latest(ctx context.Context, docID string) (delta.Delta, uint64, error) {
	var row Snapshot
	err := s.db.WithContext(ctx).
		Where("doc_id = ?", docID).
		Order("revision DESC").
		First(&row).Error
	if err != nil {
		return nil, 0, err
	}
	d, err := delta.FromJSON(row.DeltaJSON)
	if err != nil {
		return nil, 0, err
	}
	return d, row.Revision, nil
}
