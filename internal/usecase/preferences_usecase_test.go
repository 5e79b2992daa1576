package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Lunch-App/internal/domain/model"
	repoImpl "Lunch-App/internal/repository"
)

func TestPreferencesUseCase_GetDefaults(t *testing.T) {
	uc := NewPreferencesUseCase(repoImpl.NewMemoryPreferencesRepository())

	prefs, err := uc.GetPreferences(context.Background(), "new-user")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultPreferences(), *prefs)
}

func TestPreferencesUseCase_UpdateMergesPatch(t *testing.T) {
	ctx := context.Background()
	uc := NewPreferencesUseCase(repoImpl.NewMemoryPreferencesRepository())

	cuisines := []string{"川菜", "火锅"}
	updated, err := uc.UpdatePreferences(ctx, "u1", &model.PreferencesPatch{CuisineTypes: &cuisines})
	require.NoError(t, err)
	assert.Equal(t, cuisines, updated.CuisineTypes)
	assert.Equal(t, model.DefaultPriceRange, updated.PriceRange)
	assert.Equal(t, 1000.0, updated.MaxDistance)

	maxDistance := 500.0
	_, err = uc.UpdatePreferences(ctx, "u1", &model.PreferencesPatch{MaxDistance: &maxDistance})
	require.NoError(t, err)

	got, err := uc.GetPreferences(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, cuisines, got.CuisineTypes)
	assert.Equal(t, 500.0, got.MaxDistance)
}

func TestPreferencesUseCase_UpdateRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	uc := NewPreferencesUseCase(repoImpl.NewMemoryPreferencesRepository())

	tests := []struct {
		name  string
		patch *model.PreferencesPatch
	}{
		{"価格帯の順序が逆", &model.PreferencesPatch{PriceRange: &model.PriceRange{3, 1}}},
		{"価格帯が範囲外", &model.PreferencesPatch{PriceRange: &model.PriceRange{1, 5}}},
		{"負の距離", func() *model.PreferencesPatch { d := -1.0; return &model.PreferencesPatch{MaxDistance: &d} }()},
		{"未知の時間帯", func() *model.PreferencesPatch { s := "midnight"; return &model.PreferencesPatch{PreferredTime: &s} }()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.UpdatePreferences(ctx, "u1", tt.patch)
			assert.ErrorIs(t, err, ErrInvalidPreferences)
		})
	}
}

func TestPreferencesUseCase_RepositoryError(t *testing.T) {
	uc := NewPreferencesUseCase(failingPreferencesRepo{})

	_, err := uc.GetPreferences(context.Background(), "u1")
	assert.ErrorIs(t, err, errBoom)
}
