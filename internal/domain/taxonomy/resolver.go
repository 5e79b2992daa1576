// Package taxonomy は高徳地図の飲食POI分類と料理ジャンルの対応付けを提供する。
// 参照するテーブルはすべて静的で、パッケージ初期化後は読み取り専用。
package taxonomy

import (
	"strings"

	"Lunch-App/internal/domain/model"
)

const (
	// DefaultCode 飲食サービス全体を表すルートコード
	DefaultCode = "050000"
	// DefaultCategoryName ルートカテゴリの名称
	DefaultCategoryName = "餐饮服务"
)

// categoryIndex コードからノードを引くための索引（深さ優先の先行順）
type categoryIndex struct {
	byCode map[string]*model.POICategory
	order  []string
}

var index = buildIndex(RestaurantCategories)

// aliasIndex ジャンル名から同義語リストを引くための索引
var aliasIndex = buildAliasIndex(CuisineNameMap)

func buildIndex(root *model.POICategory) *categoryIndex {
	idx := &categoryIndex{byCode: make(map[string]*model.POICategory)}
	stack := []*model.POICategory{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == nil {
			continue
		}
		// 重複コードは最初に見つかったものを採用
		if _, exists := idx.byCode[node.Code]; !exists {
			idx.byCode[node.Code] = node
			idx.order = append(idx.order, node.Code)
		}
		for i := len(node.Subcategories) - 1; i >= 0; i-- {
			stack = append(stack, node.Subcategories[i])
		}
	}
	return idx
}

func buildAliasIndex(aliases []CuisineAlias) map[string][]string {
	m := make(map[string][]string, len(aliases))
	for _, a := range aliases {
		if _, exists := m[a.Cuisine]; !exists {
			m[a.Cuisine] = a.Names
		}
	}
	return m
}

// CategoryName はコードに対応するカテゴリ名を返す。見つからなければルートの名称を返す
func CategoryName(code string) string {
	if node, ok := index.byCode[code]; ok {
		return node.Name
	}
	return DefaultCategoryName
}

// Subcategories は指定コードの直下のカテゴリを返す。見つからなければ空
func Subcategories(parentCode string) []*model.POICategory {
	node, ok := index.byCode[parentCode]
	if !ok {
		return []*model.POICategory{}
	}
	return append([]*model.POICategory{}, node.Subcategories...)
}

// Lookup はコードに対応するカテゴリノードを返す
func Lookup(code string) (*model.POICategory, bool) {
	node, ok := index.byCode[code]
	return node, ok
}

// AllCodes はツリー内の全コードを先行順で返す
func AllCodes() []string {
	return append([]string{}, index.order...)
}

// IsDefaultCode はルートコードかどうかを判定する
func IsDefaultCode(code string) bool {
	return code == DefaultCode
}

// CodeForKeyword は自由入力のキーワードからPOIコードを推定する。
// ジャンル名の一致・包含を先に、次にキーワードの包含を見て、最初に一致したものを返す
func CodeForKeyword(text string) string {
	lowerText := strings.ToLower(strings.TrimSpace(text))
	if lowerText == "" {
		return DefaultCode
	}

	for _, cuisine := range CuisineTypes {
		name := strings.ToLower(cuisine.Name)
		if name == lowerText || strings.Contains(name, lowerText) || strings.Contains(lowerText, name) {
			return cuisine.Code
		}
		for _, kw := range cuisine.Keywords {
			if strings.Contains(lowerText, strings.ToLower(kw)) {
				return cuisine.Code
			}
		}
	}

	return DefaultCode
}

// synonymsFor はジャンル名の同義語を返す。表に無ければそのもの自体
func synonymsFor(cuisine string) []string {
	if names, ok := aliasIndex[cuisine]; ok {
		return names
	}
	return []string{cuisine}
}

// namesMatch は同義語のいずれかがカテゴリ名を含むか、カテゴリ名に含まれるかを判定する
func namesMatch(lowerCategory string, names []string) bool {
	for _, name := range names {
		lowerName := strings.ToLower(name)
		if strings.Contains(lowerCategory, lowerName) || strings.Contains(lowerName, lowerCategory) {
			return true
		}
	}
	return false
}

// CuisineMatches は店舗カテゴリがユーザーの好みのジャンルに合うかを判定する。
// 好みが空なら常にtrue
func CuisineMatches(category string, preferences []string) bool {
	if len(preferences) == 0 {
		return true
	}

	lowerCategory := strings.ToLower(category)
	for _, preference := range preferences {
		if namesMatch(lowerCategory, synonymsFor(preference)) {
			return true
		}
	}
	return false
}

// MatchingCuisines は店舗カテゴリに一致するジャンル名を同義語表の宣言順で返す
func MatchingCuisines(category string) []string {
	lowerCategory := strings.ToLower(category)
	matches := []string{}
	for _, alias := range CuisineNameMap {
		if namesMatch(lowerCategory, alias.Names) {
			matches = append(matches, alias.Cuisine)
		}
	}
	return matches
}
