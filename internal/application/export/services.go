package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sainiharshit322/personnel-empowerment/internal/application"
	appanalytics "github.com/sainiharshit322/personnel-empowerment/internal/application/analytics"
	domain "github.com/sainiharshit322/personnel-empowerment/internal/domain/analytics"
)

// Service renders the current analytics snapshot to JSON and uploads it
// to object storage.
type Service struct {
	Analytics *appanalytics.Service
	Store     domain.SnapshotStore
	Clock     application.Clock
}

// Result describes one completed export
type Result struct {
	Success     bool      `json:"success"`
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Run builds a fresh snapshot and stores it. A store-level aggregation
// failure aborts the export; there is no point archiving a zeroed payload.
func (s *Service) Run(ctx context.Context) (Result, error) {
	snap, err := s.Analytics.Snapshot(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("building snapshot: %w", err)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return Result{}, fmt.Errorf("encoding snapshot: %w", err)
	}

	now := s.Clock.Now().UTC()
	key := fmt.Sprintf("exports/analytics-%s.json", now.Format("20060102T150405Z"))
	url, err := s.Store.UploadJSON(ctx, key, data)
	if err != nil {
		return Result{}, fmt.Errorf("uploading snapshot: %w", err)
	}

	return Result{
		Success:     true,
		Key:         key,
		URL:         url,
		GeneratedAt: now,
	}, nil
}
