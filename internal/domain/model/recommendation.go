package model

import (
	"fmt"
	"strings"
	"time"
)

// MatchType 推薦の一致度ランク
type MatchType string

const (
	MatchTypePerfect MatchType = "perfect"
	MatchTypeGood    MatchType = "good"
	MatchTypeFair    MatchType = "fair"
)

// MatchTypeForScore スコアからランクを決定する（80以上: perfect、60以上: good、それ以外: fair）
func MatchTypeForScore(score int) MatchType {
	switch {
	case score >= 80:
		return MatchTypePerfect
	case score >= 60:
		return MatchTypeGood
	default:
		return MatchTypeFair
	}
}

// ParseMatchType 文字列をMatchTypeに変換する。未知の値はfalseを返す
func ParseMatchType(v string) (MatchType, bool) {
	switch MatchType(strings.ToLower(strings.TrimSpace(v))) {
	case MatchTypePerfect:
		return MatchTypePerfect, true
	case MatchTypeGood:
		return MatchTypeGood, true
	case MatchTypeFair:
		return MatchTypeFair, true
	}
	return MatchTypeFair, false
}

// RecommendationContext 1回の推薦に必要な入力
type RecommendationContext struct {
	Location        Location        `json:"location"`
	Preferences     UserPreferences `json:"preferences"`
	Weather         string          `json:"weather,omitempty"`
	TimeOfDay       string          `json:"timeOfDay"`
	PreviousChoices []string        `json:"previousChoices,omitempty"`
}

// Recommendation スコア付きの推薦結果
type Recommendation struct {
	Restaurant *Restaurant `json:"restaurant" firestore:"restaurant"`
	Score      int         `json:"score" firestore:"score"` // 0〜100
	Reasons    []string    `json:"reasons" firestore:"reasons"`
	MatchType  MatchType   `json:"matchType" firestore:"matchType"`
}

// RecommendationResult オーケストレーターの出力
// Sourceは "ai" か "heuristic"
type RecommendationResult struct {
	Recommendations []Recommendation `json:"recommendations"`
	Source          string           `json:"source"`
}

// matchTypeLabelMap はランクから説明文の見出しへのマッピング
var matchTypeLabelMap = map[MatchType]string{
	MatchTypePerfect: "perfect match, highly recommended!",
	MatchTypeGood:    "good match, worth a try.",
	MatchTypeFair:    "decent option.",
}

// Explain 推薦結果をユーザー向けの説明文にする
func Explain(rec Recommendation) string {
	var b strings.Builder
	name := ""
	if rec.Restaurant != nil {
		name = rec.Restaurant.Name
	}
	label, ok := matchTypeLabelMap[rec.MatchType]
	if !ok {
		label = matchTypeLabelMap[MatchTypeFair]
	}
	fmt.Fprintf(&b, "%s: %s", name, label)

	if len(rec.Reasons) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(rec.Reasons, ", "))
		b.WriteString(".")
	}

	if rec.Restaurant != nil && rec.Restaurant.Distance != nil {
		fmt.Fprintf(&b, " %.1f km away.", *rec.Restaurant.Distance/1000)
	}

	return b.String()
}

// RecommendationRequest POST /recommendations のリクエストボディ
type RecommendationRequest struct {
	Location        *Location        `json:"location" validate:"required"`
	UserID          string           `json:"userId,omitempty"`
	Preferences     *UserPreferences `json:"preferences,omitempty"`
	Weather         string           `json:"weather,omitempty"`
	TimeOfDay       string           `json:"timeOfDay,omitempty" validate:"omitempty,oneof=breakfast lunch dinner snack"`
	PreviousChoices []string         `json:"previousChoices,omitempty"`
	Radius          int              `json:"radius,omitempty" validate:"omitempty,gt=0,lte=50000"`
	Restaurants     []*Restaurant    `json:"restaurants,omitempty"` // 指定された場合は検索を省略
}

// RecommendationItem レスポンス用の推薦結果（説明文付き）
type RecommendationItem struct {
	Recommendation
	Explanation      string   `json:"explanation"`
	MatchingCuisines []string `json:"matchingCuisines"`
}

// RecommendationResponse 推薦APIのレスポンス
type RecommendationResponse struct {
	RecommendationID string               `json:"recommendationId,omitempty"`
	Source           string               `json:"source"`
	TimeOfDay        string               `json:"timeOfDay"`
	CandidateCount   int                  `json:"candidateCount"`
	Recommendations  []RecommendationItem `json:"recommendations"`
}

// CachedRecommendations Firestoreに保存する推薦結果のバッチ
type CachedRecommendations struct {
	Recommendations []Recommendation `firestore:"recommendations"`
	Source          string           `firestore:"source"`
	TimeOfDay       string           `firestore:"timeOfDay"`
	CandidateCount  int              `firestore:"candidateCount"`
	CreatedAt       time.Time        `firestore:"createdAt"`
	ExpireAt        time.Time        `firestore:"expireAt"` // Firestore TTLポリシー用
}

// NewCachedRecommendations TTL付きのキャッシュ用構造体を作成
func NewCachedRecommendations(result *RecommendationResult, timeOfDay string, candidateCount int, now time.Time, ttlHours int) *CachedRecommendations {
	return &CachedRecommendations{
		Recommendations: result.Recommendations,
		Source:          result.Source,
		TimeOfDay:       timeOfDay,
		CandidateCount:  candidateCount,
		CreatedAt:       now,
		ExpireAt:        now.Add(time.Duration(ttlHours) * time.Hour),
	}
}

// IsExpired 有効期限切れかチェック
func (c *CachedRecommendations) IsExpired(now time.Time) bool {
	return !c.ExpireAt.IsZero() && now.After(c.ExpireAt)
}
