package repository

import (
	"context"
	"fmt"
	"sync"

	"Lunch-App/internal/domain/model"
	"Lunch-App/internal/domain/repository"
)

// MemoryPreferencesRepository Supabase未設定時に使うプロセス内の好み設定ストア
type MemoryPreferencesRepository struct {
	mu    sync.RWMutex
	prefs map[string]model.UserPreferences
}

func NewMemoryPreferencesRepository() repository.PreferencesRepository {
	return &MemoryPreferencesRepository{
		prefs: make(map[string]model.UserPreferences),
	}
}

func (r *MemoryPreferencesRepository) Get(ctx context.Context, userID string) (*model.UserPreferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefs, ok := r.prefs[userID]
	if !ok {
		return nil, fmt.Errorf("ユーザー %s の好み設定: %w", userID, repository.ErrNotFound)
	}
	return &prefs, nil
}

func (r *MemoryPreferencesRepository) Save(ctx context.Context, userID string, prefs model.UserPreferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs[userID] = prefs
	return nil
}
