package repository

import (
	"context"

	"Lunch-App/internal/domain/model"
)

type PreferencesRepository interface {
	// Get は保存済みの好みを取得する。未保存なら ErrNotFound を返す
	Get(ctx context.Context, userID string) (*model.UserPreferences, error)
	Save(ctx context.Context, userID string, prefs model.UserPreferences) error
}
