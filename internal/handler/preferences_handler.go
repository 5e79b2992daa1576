package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Lunch-App/internal/domain/model"
	"Lunch-App/internal/usecase"
)

// PreferencesHandler ユーザーの好み設定に関するHTTPハンドラー
type PreferencesHandler struct {
	preferencesUseCase usecase.PreferencesUseCase
}

func NewPreferencesHandler(preferencesUseCase usecase.PreferencesUseCase) *PreferencesHandler {
	return &PreferencesHandler{
		preferencesUseCase: preferencesUseCase,
	}
}

// GetPreferences GET /preferences/:user_id
func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	prefs, err := h.preferencesUseCase.GetPreferences(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, "好み設定の取得に失敗しました", err)
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// PutPreferences PUT /preferences/:user_id - 指定されたフィールドのみ更新
func (h *PreferencesHandler) PutPreferences(c *gin.Context) {
	var patch model.PreferencesPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	if err := validateStruct(&patch); err != nil {
		respondValidationError(c, err)
		return
	}
	if patch.PriceRange != nil && !patch.PriceRange.Valid() {
		respondValidationError(c, &ValidationError{Field: "priceRange", Message: "価格帯は1〜4の範囲で[最小, 最大]の順に指定してください"})
		return
	}

	prefs, err := h.preferencesUseCase.UpdatePreferences(c.Request.Context(), c.Param("user_id"), &patch)
	if err != nil {
		respondError(c, "好み設定の更新に失敗しました", err)
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// validatePreferences はリクエストに含まれる好み設定をチェックする
func validatePreferences(field string, prefs model.UserPreferences) error {
	if prefs.PriceRange.IsSet() && !prefs.PriceRange.Valid() {
		return &ValidationError{Field: field + ".priceRange", Message: "価格帯は1〜4の範囲で[最小, 最大]の順に指定してください"}
	}
	if prefs.MaxDistance < 0 {
		return &ValidationError{Field: field + ".maxDistance", Message: "最大距離は0以上で指定してください"}
	}
	return nil
}
