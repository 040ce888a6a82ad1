package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"concurso-api/config"
	"concurso-api/models"
	"concurso-api/moderation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContestAnalysisEntry is the cached snapshot of one contest's last full
// analysis run. Replaced wholesale on every refresh, never patched.
type ContestAnalysisEntry struct {
	ContestID      int                         `json:"contest_id"`
	Results        []moderation.AnalysisResult `json:"results"`
	RequiresReview []moderation.AnalysisResult `json:"requires_review"`
	Stats          BatchStats                  `json:"stats"`
	LibraryVersion string                      `json:"library_version"`
	ComputedAt     time.Time                   `json:"computed_at"`
}

// CacheStore is the injected keyed storage behind the batch analysis cache.
// Implementations must survive whatever lifetime the deployment needs: the
// gorm-backed store is durable across restarts, the in-memory one backs tests.
type CacheStore interface {
	Get(contestID int) (*ContestAnalysisEntry, bool, error)
	Put(entry *ContestAnalysisEntry) error
	Delete(contestID int) error
	Clear() error
}

// GormCacheStore keeps one row per contest in contest_analysis_cache.
type GormCacheStore struct{}

// Get returns the stored entry for contestID; a miss is (nil, false, nil).
func (GormCacheStore) Get(contestID int) (*ContestAnalysisEntry, bool, error) {
	var row models.ContestAnalysisCache
	if err := config.DB.Where("contest_id = ?", contestID).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read analysis cache: %w", err)
	}

	var entry ContestAnalysisEntry
	if err := json.Unmarshal([]byte(row.Payload), &entry); err != nil {
		return nil, false, fmt.Errorf("corrupt analysis cache for contest %d: %w", contestID, err)
	}
	return &entry, true, nil
}

// Put replaces the entry for the contest, inserting if absent.
func (GormCacheStore) Put(entry *ContestAnalysisEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode analysis cache entry: %w", err)
	}
	row := models.ContestAnalysisCache{
		ContestID:  entry.ContestID,
		Payload:    string(payload),
		ComputedAt: entry.ComputedAt,
	}
	if err := config.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "contest_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "computed_at"}),
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to write analysis cache: %w", err)
	}
	return nil
}

// Delete removes one contest's entry. Deleting a missing entry is a no-op.
func (GormCacheStore) Delete(contestID int) error {
	if err := config.DB.Where("contest_id = ?", contestID).
		Delete(&models.ContestAnalysisCache{}).Error; err != nil {
		return fmt.Errorf("failed to delete analysis cache: %w", err)
	}
	return nil
}

// Clear removes every entry.
func (GormCacheStore) Clear() error {
	if err := config.DB.Where("1 = 1").Delete(&models.ContestAnalysisCache{}).Error; err != nil {
		return fmt.Errorf("failed to clear analysis cache: %w", err)
	}
	return nil
}

// MemoryCacheStore is a map-backed CacheStore for tests and previews.
type MemoryCacheStore struct {
	mu      sync.RWMutex
	entries map[int]*ContestAnalysisEntry
}

// NewMemoryCacheStore constructs an empty in-memory store.
func NewMemoryCacheStore() *MemoryCacheStore {
	return &MemoryCacheStore{entries: make(map[int]*ContestAnalysisEntry)}
}

func (s *MemoryCacheStore) Get(contestID int) (*ContestAnalysisEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[contestID]
	return entry, ok, nil
}

func (s *MemoryCacheStore) Put(entry *ContestAnalysisEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ContestID] = entry
	return nil
}

func (s *MemoryCacheStore) Delete(contestID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, contestID)
	return nil
}

func (s *MemoryCacheStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[int]*ContestAnalysisEntry)
	return nil
}
