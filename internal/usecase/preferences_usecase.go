package usecase

import (
	"context"
	"errors"
	"fmt"

	"Lunch-App/internal/domain/model"
	"Lunch-App/internal/domain/repository"
	"Lunch-App/internal/logging"
)

// ErrInvalidPreferences 好み設定の値が不正
var ErrInvalidPreferences = errors.New("好み設定が不正です")

type PreferencesUseCase interface {
	// GetPreferences は保存済みの好みを返す。未保存ならデフォルト値を返す
	GetPreferences(ctx context.Context, userID string) (*model.UserPreferences, error)

	// UpdatePreferences は部分更新を適用して保存し、更新後の値を返す
	UpdatePreferences(ctx context.Context, userID string, patch *model.PreferencesPatch) (*model.UserPreferences, error)
}

type preferencesUseCaseImpl struct {
	preferencesRepo repository.PreferencesRepository
}

func NewPreferencesUseCase(preferencesRepo repository.PreferencesRepository) PreferencesUseCase {
	return &preferencesUseCaseImpl{
		preferencesRepo: preferencesRepo,
	}
}

func (u *preferencesUseCaseImpl) GetPreferences(ctx context.Context, userID string) (*model.UserPreferences, error) {
	prefs, err := u.preferencesRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			defaults := model.DefaultPreferences()
			return &defaults, nil
		}
		return nil, fmt.Errorf("好み設定の取得に失敗: %w", err)
	}
	return prefs, nil
}

func (u *preferencesUseCaseImpl) UpdatePreferences(ctx context.Context, userID string, patch *model.PreferencesPatch) (*model.UserPreferences, error) {
	current, err := u.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := patch.Apply(*current)
	if err := validatePreferences(merged); err != nil {
		return nil, err
	}

	if err := u.preferencesRepo.Save(ctx, userID, merged); err != nil {
		return nil, fmt.Errorf("好み設定の保存に失敗: %w", err)
	}

	logging.Info().Str("user_id", userID).Msg("💾 好み設定を更新")
	return &merged, nil
}

func validatePreferences(prefs model.UserPreferences) error {
	if prefs.PriceRange.IsSet() && !prefs.PriceRange.Valid() {
		return fmt.Errorf("%w: 価格帯は1〜4の範囲で[最小, 最大]の順に指定してください", ErrInvalidPreferences)
	}
	if prefs.MaxDistance < 0 {
		return fmt.Errorf("%w: 最大距離は0以上で指定してください", ErrInvalidPreferences)
	}
	if prefs.PreferredTime != "" && !model.IsValidTimeOfDay(prefs.PreferredTime) {
		return fmt.Errorf("%w: 未知の時間帯です: %s", ErrInvalidPreferences, prefs.PreferredTime)
	}
	return nil
}
