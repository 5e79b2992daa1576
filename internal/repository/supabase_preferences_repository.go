package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"Lunch-App/internal/domain/model"
	"Lunch-App/internal/domain/repository"
	"Lunch-App/internal/infrastructure/database"
)

const preferencesTable = "user_preferences"

type SupabasePreferencesRepository struct {
	client *database.SupabaseClient
	now    func() time.Time
}

func NewSupabasePreferencesRepository(client *database.SupabaseClient) repository.PreferencesRepository {
	return &SupabasePreferencesRepository{
		client: client,
		now:    time.Now,
	}
}

// preferencesRow user_preferencesテーブルの1行
// preferencesはJSONBカラムにそのまま保存する
type preferencesRow struct {
	UserID      string                `json:"user_id"`
	Preferences model.UserPreferences `json:"preferences"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

func (r *SupabasePreferencesRepository) Get(ctx context.Context, userID string) (*model.UserPreferences, error) {
	data, _, err := r.client.GetClient().From(preferencesTable).Select("*", "exact", false).Eq("user_id", userID).Execute()
	if err != nil {
		return nil, fmt.Errorf("好み設定の取得失敗: %w", err)
	}

	var rows []preferencesRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("好み設定のJSONアンマーシャル失敗: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("ユーザー %s の好み設定: %w", userID, repository.ErrNotFound)
	}

	prefs := rows[0].Preferences
	return &prefs, nil
}

// Save はuser_idをキーにupsertする
func (r *SupabasePreferencesRepository) Save(ctx context.Context, userID string, prefs model.UserPreferences) error {
	row := preferencesRow{
		UserID:      userID,
		Preferences: prefs,
		UpdatedAt:   r.now().UTC(),
	}

	_, _, err := r.client.GetClient().From(preferencesTable).Insert(row, true, "user_id", "", "").Execute()
	if err != nil {
		return fmt.Errorf("好み設定の保存失敗: %w", err)
	}

	return nil
}
