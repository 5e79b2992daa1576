package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Lunch-App/internal/domain/taxonomy"
)

// CategoryHandler は飲食カテゴリ分類の参照API
type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// ListCategories GET /categories - 分類ツリー全体
// ?flat=true なら先行順のコード一覧を返す
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	if c.Query("flat") == "true" {
		codes := taxonomy.AllCodes()
		items := make([]gin.H, 0, len(codes))
		for _, code := range codes {
			items = append(items, gin.H{"code": code, "name": taxonomy.CategoryName(code)})
		}
		c.JSON(http.StatusOK, gin.H{"categories": items, "count": len(items)})
		return
	}
	c.JSON(http.StatusOK, taxonomy.RestaurantCategories)
}

// GetCategory GET /categories/:code
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	code := c.Param("code")
	node, ok := taxonomy.Lookup(code)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "カテゴリが見つかりません",
			"code":  code,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":          node.Code,
		"name":          node.Name,
		"keywords":      node.Keywords,
		"subcategories": taxonomy.Subcategories(code),
	})
}

// MatchCuisines GET /cuisines/match?category= - 店舗カテゴリに合う料理ジャンル
func (h *CategoryHandler) MatchCuisines(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		respondValidationError(c, &ValidationError{Field: "category", Message: "必須項目です"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"cuisines": taxonomy.MatchingCuisines(category),
	})
}

// ResolveKeyword GET /cuisines/code?keyword= - キーワードからPOIコードを推定
func (h *CategoryHandler) ResolveKeyword(c *gin.Context) {
	keyword := c.Query("keyword")
	code := taxonomy.CodeForKeyword(keyword)

	c.JSON(http.StatusOK, gin.H{
		"keyword": keyword,
		"code":    code,
		"name":    taxonomy.CategoryName(code),
	})
}
