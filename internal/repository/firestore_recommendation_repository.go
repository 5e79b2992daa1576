package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"Lunch-App/internal/domain/model"
	"Lunch-App/internal/domain/repository"
	"Lunch-App/internal/logging"
)

const recommendationsCollection = "recommendations"

// newRecommendationID 推薦バッチのIDを生成する
func newRecommendationID() string {
	return fmt.Sprintf("rec_%s", uuid.New().String())
}

// FirestoreRecommendationRepository Firestoreを使用した推薦結果キャッシュリポジトリ
type FirestoreRecommendationRepository struct {
	client *firestore.Client
	now    func() time.Time
}

// NewFirestoreRecommendationRepository 新しいFirestoreRecommendationRepositoryインスタンスを作成
// now は期限判定に使う。nil なら time.Now
func NewFirestoreRecommendationRepository(client *firestore.Client, now func() time.Time) repository.RecommendationCacheRepository {
	if now == nil {
		now = time.Now
	}
	return &FirestoreRecommendationRepository{
		client: client,
		now:    now,
	}
}

// Save は推薦結果をFirestoreに保存し、recommendation_idを返す
func (r *FirestoreRecommendationRepository) Save(ctx context.Context, cached *model.CachedRecommendations) (string, error) {
	id := newRecommendationID()

	if _, err := r.client.Collection(recommendationsCollection).Doc(id).Set(ctx, cached); err != nil {
		logging.Error().Err(err).Str("recommendation_id", id).Msg("❌ 推薦結果の保存に失敗")
		return "", fmt.Errorf("推薦結果の保存に失敗しました: %w", err)
	}

	logging.Info().Str("recommendation_id", id).Time("expire_at", cached.ExpireAt).Msg("✅ 推薦結果を保存")
	return id, nil
}

// Get は指定されたIDの推薦結果を取得する
// TTLポリシーによる削除は遅延するため、期限切れはここでも判定する
func (r *FirestoreRecommendationRepository) Get(ctx context.Context, id string) (*model.CachedRecommendations, error) {
	doc, err := r.client.Collection(recommendationsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("推薦結果 %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("推薦結果の取得に失敗しました: %w", err)
	}

	var cached model.CachedRecommendations
	if err := doc.DataTo(&cached); err != nil {
		return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
	}

	if cached.IsExpired(r.now()) {
		return nil, fmt.Errorf("推薦結果 %s は期限切れ: %w", id, repository.ErrNotFound)
	}

	return &cached, nil
}
