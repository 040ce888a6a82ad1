package services

import (
	"context"
	"sync"

	"concurso-api/moderation"
)

// BatchRunner abstracts the batch driver so the cache can be tested with a
// call-counting stub instead of the real pipeline.
type BatchRunner func(ctx context.Context, contestID int, persist bool) (*BatchResult, error)

// CacheService answers dashboard reads from the durable analysis cache and
// only runs the pipeline on a miss or a forced refresh. Refreshes of the same
// contest are serialized; the later writer wins.
type CacheService struct {
	store   CacheStore
	run     BatchRunner
	persist bool

	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

// NewCacheService wires a cache over the given store and batch runner.
// persist controls whether a refresh also writes results onto submissions.
func NewCacheService(store CacheStore, run BatchRunner, persist bool) *CacheService {
	return &CacheService{
		store:   store,
		run:     run,
		persist: persist,
		locks:   make(map[int]*sync.Mutex),
	}
}

// Cache is the process-wide service, wired in InitModeration.
var Cache *CacheService

// InitModeration builds the default cache service over the gorm-backed store.
// Call after config.InitDB.
func InitModeration() {
	Cache = NewCacheService(GormCacheStore{}, RunBatch, true)
}

func (s *CacheService) contestLock(contestID int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[contestID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[contestID] = lock
	}
	return lock
}

// GetOrCompute returns the cached entry for contestID when one exists and
// forceRefresh is false; no classification work happens on that path. On a
// miss or a forced refresh it runs the full batch, replaces the entry
// atomically (all-or-nothing) and returns the new snapshot.
func (s *CacheService) GetOrCompute(ctx context.Context, contestID int, forceRefresh bool) (*ContestAnalysisEntry, error) {
	if !forceRefresh {
		entry, ok, err := s.store.Get(contestID)
		if err != nil {
			return nil, err
		}
		if ok {
			return entry, nil
		}
	}
	return s.refresh(ctx, contestID)
}

// GetCached returns the entry for contestID, or nil on a miss. A miss is not
// an error; it just means nothing has been computed yet.
func (s *CacheService) GetCached(contestID int) (*ContestAnalysisEntry, error) {
	entry, ok, err := s.store.Get(contestID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return entry, nil
}

// Refresh unconditionally recomputes and replaces the contest's entry.
func (s *CacheService) Refresh(ctx context.Context, contestID int) (*ContestAnalysisEntry, error) {
	return s.refresh(ctx, contestID)
}

func (s *CacheService) refresh(ctx context.Context, contestID int) (*ContestAnalysisEntry, error) {
	lock := s.contestLock(contestID)
	lock.Lock()
	defer lock.Unlock()

	run, err := s.run(ctx, contestID, s.persist)
	if err != nil {
		// A failed or cancelled run must not leave a partial entry behind.
		return nil, err
	}

	entry := buildEntry(run)
	if err := s.store.Put(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ClearContest removes one contest's entry.
func (s *CacheService) ClearContest(contestID int) error {
	return s.store.Delete(contestID)
}

// ClearAll removes every cached entry.
func (s *CacheService) ClearAll() error {
	return s.store.Clear()
}

func buildEntry(run *BatchResult) *ContestAnalysisEntry {
	entry := &ContestAnalysisEntry{
		ContestID:      run.ContestID,
		Results:        run.Results,
		Stats:          run.Stats,
		LibraryVersion: moderation.LibraryVersion,
		ComputedAt:     run.ComputedAt,
	}
	for _, r := range run.Results {
		if RequiresReview(r) {
			entry.RequiresReview = append(entry.RequiresReview, r)
		}
	}
	return entry
}
