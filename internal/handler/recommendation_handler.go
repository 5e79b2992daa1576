package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Lunch-App/internal/domain/model"
	"Lunch-App/internal/usecase"
)

// RecommendationHandler は推薦APIのハンドラー
type RecommendationHandler struct {
	recommendationUseCase usecase.RecommendationUseCase
}

// NewRecommendationHandler は新しいRecommendationHandlerインスタンスを作成
func NewRecommendationHandler(recommendationUseCase usecase.RecommendationUseCase) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationUseCase: recommendationUseCase,
	}
}

// PostRecommendations は推薦を生成するエンドポイント
// POST /recommendations
func (h *RecommendationHandler) PostRecommendations(c *gin.Context) {
	var req model.RecommendationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	if err := h.validateRequest(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	response, err := h.recommendationUseCase.GenerateRecommendations(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "推薦の生成に失敗しました", err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// validateRequest はリクエストの詳細バリデーションを行う
func (h *RecommendationHandler) validateRequest(req *model.RecommendationRequest) error {
	if err := validateStruct(req); err != nil {
		return err
	}
	if err := validateCoordinates("location", req.Location.Latitude, req.Location.Longitude); err != nil {
		return err
	}
	if req.Preferences != nil {
		if err := validatePreferences("preferences", *req.Preferences); err != nil {
			return err
		}
	}
	return nil
}

// GetRecommendations は保存済みの推薦結果を取得するエンドポイント
// GET /recommendations/:id
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "recommendation_idが指定されていません",
		})
		return
	}

	response, err := h.recommendationUseCase.GetRecommendations(c.Request.Context(), id)
	if err != nil {
		respondError(c, "推薦結果が見つかりません", err)
		return
	}

	c.JSON(http.StatusOK, response)
}
