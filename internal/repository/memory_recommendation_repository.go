package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"Lunch-App/internal/domain/model"
	"Lunch-App/internal/domain/repository"
)

// MemoryRecommendationRepository Firestore未設定時に使うプロセス内キャッシュ
// 期限切れのエントリは次回の保存時にまとめて削除する
type MemoryRecommendationRepository struct {
	mu      sync.Mutex
	entries map[string]*model.CachedRecommendations
	now     func() time.Time
}

// NewMemoryRecommendationRepository は期限判定に now を使う
// ExpireAt を刻む側と同じ時計を渡すこと。nil なら time.Now
func NewMemoryRecommendationRepository(now func() time.Time) repository.RecommendationCacheRepository {
	return newMemoryRecommendationRepository(now)
}

func newMemoryRecommendationRepository(now func() time.Time) *MemoryRecommendationRepository {
	if now == nil {
		now = time.Now
	}
	return &MemoryRecommendationRepository{
		entries: make(map[string]*model.CachedRecommendations),
		now:     now,
	}
}

func (r *MemoryRecommendationRepository) Save(ctx context.Context, cached *model.CachedRecommendations) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, entry := range r.entries {
		if entry.IsExpired(now) {
			delete(r.entries, id)
		}
	}

	id := newRecommendationID()
	r.entries[id] = cached
	return id, nil
}

func (r *MemoryRecommendationRepository) Get(ctx context.Context, id string) (*model.CachedRecommendations, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok || entry.IsExpired(r.now()) {
		return nil, fmt.Errorf("推薦結果 %s: %w", id, repository.ErrNotFound)
	}
	return entry, nil
}
