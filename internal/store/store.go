// Package store persists run snapshots and manager progress. The engine only
// produces and consumes serializable values; where they live is this
// package's concern.
package store

import (
	"context"
	"sync"

	"github.com/gafferdeck/gaffer-server-go/internal/game"
	"github.com/gafferdeck/gaffer-server-go/internal/progress"
)

// Store persists run snapshots and cross-run progress records.
type Store interface {
	SaveSnapshot(ctx context.Context, managerID string, snap *game.RunSnapshot) error
	// LoadSnapshot returns (nil, nil) when no snapshot exists.
	LoadSnapshot(ctx context.Context, managerID string) (*game.RunSnapshot, error)
	ClearSnapshot(ctx context.Context, managerID string) error

	SaveProgress(ctx context.Context, p *progress.ManagerProgress) error
	// LoadProgress returns (nil, nil) when the manager is unknown.
	LoadProgress(ctx context.Context, managerID string) (*progress.ManagerProgress, error)

	Close()
}

// MemoryStore is an in-process Store for tests and storeless deployments.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
	progress  map[string]*progress.ManagerProgress
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string][]byte),
		progress:  make(map[string]*progress.ManagerProgress),
	}
}

func (s *MemoryStore) SaveSnapshot(_ context.Context, managerID string, snap *game.RunSnapshot) error {
	data, err := snap.Encode()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[managerID] = data
	return nil
}

func (s *MemoryStore) LoadSnapshot(_ context.Context, managerID string) (*game.RunSnapshot, error) {
	s.mu.RLock()
	data, ok := s.snapshots[managerID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return game.DecodeSnapshot(data)
}

func (s *MemoryStore) ClearSnapshot(_ context.Context, managerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, managerID)
	return nil
}

func (s *MemoryStore) SaveProgress(_ context.Context, p *progress.ManagerProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	cp.UnlockedWeeks = append([]int(nil), p.UnlockedWeeks...)
	cp.RunHistory = append([]progress.RunRecord(nil), p.RunHistory...)
	s.progress[p.ManagerID] = &cp
	return nil
}

func (s *MemoryStore) LoadProgress(_ context.Context, managerID string) (*progress.ManagerProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.progress[managerID]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.UnlockedWeeks = append([]int(nil), p.UnlockedWeeks...)
	cp.RunHistory = append([]progress.RunRecord(nil), p.RunHistory...)
	return &cp, nil
}

func (s *MemoryStore) Close() {}
