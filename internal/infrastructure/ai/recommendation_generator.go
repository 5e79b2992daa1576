package ai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"Lunch-App/internal/domain/helper"
	"Lunch-App/internal/domain/model"
	"Lunch-App/internal/domain/repository"
	"Lunch-App/internal/logging"
)

const systemPrompt = "你是一个专业的餐厅推荐助手，会根据用户偏好、位置信息和餐厅数据给出个性化推荐。只返回JSON，包含餐厅ID、推荐分数、推荐理由和匹配类型。"

// ErrMalformedResponse はLLMの応答が期待する形式でない
var ErrMalformedResponse = errors.New("LLMの応答形式が不正です")

// aiRecommendationRepository はLLM APIを使用してRecommendationGenerationRepositoryを実装
type aiRecommendationRepository struct {
	client *LLMClient
}

// NewAIRecommendationRepository は新しいaiRecommendationRepositoryインスタンスを作成
func NewAIRecommendationRepository(client *LLMClient) repository.RecommendationGenerationRepository {
	return &aiRecommendationRepository{
		client: client,
	}
}

// IsConfigured は呼び出し時点でAPIキーが設定されているかを返す
func (g *aiRecommendationRepository) IsConfigured() bool {
	return g.client.IsConfigured()
}

// GenerateRecommendations はLLMに候補店舗を渡し、検証済みの推薦を返す
func (g *aiRecommendationRepository) GenerateRecommendations(ctx context.Context, rc model.RecommendationContext, restaurants []*model.Restaurant) ([]model.Recommendation, error) {
	prompt, err := g.buildRecommendationPrompt(rc, restaurants)
	if err != nil {
		return nil, err
	}

	logging.Debug().Int("candidates", len(restaurants)).Msg("🤖 LLM APIで推薦を生成中...")

	content, err := g.client.ChatCompletion(ctx, []ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, fmt.Errorf("LLM API呼び出しエラー: %w", err)
	}

	recommendations, err := parseRecommendations(content, restaurants)
	if err != nil {
		return nil, err
	}

	logging.Info().Int("count", len(recommendations)).Msg("✅ LLM推薦の解析完了")
	return recommendations, nil
}

// promptRestaurant はプロンプトに載せる店舗情報
type promptRestaurant struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Rating     float64  `json:"rating"`
	PriceLevel int      `json:"priceLevel"`
	Distance   *float64 `json:"distance,omitempty"`
	IsOpen     bool     `json:"isOpen"`
}

// buildRecommendationPrompt は推薦生成用プロンプトを構築
func (g *aiRecommendationRepository) buildRecommendationPrompt(rc model.RecommendationContext, restaurants []*model.Restaurant) (string, error) {
	list := make([]promptRestaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if r == nil {
			continue
		}
		list = append(list, promptRestaurant{
			ID:         r.ID,
			Name:       r.Name,
			Category:   r.Category,
			Rating:     r.Rating,
			PriceLevel: r.PriceLevel,
			Distance:   r.Distance,
			IsOpen:     r.IsOpen,
		})
	}

	listJSON, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return "", fmt.Errorf("店舗リストのシリアライズに失敗: %w", err)
	}

	prefs := rc.Preferences
	priceRange := prefs.PriceRange.OrDefault()
	maxDistance := "不限"
	if prefs.MaxDistance > 0 {
		maxDistance = fmt.Sprintf("%.0f米", prefs.MaxDistance)
	}

	prompt := fmt.Sprintf(`请根据以下信息为用户推荐餐厅。

用户偏好：
- 偏好菜系：%s
- 价格区间：%d-%d级
- 最大距离：%s
- 饮食限制：%s
- 用餐时间：%s

当前环境：
- 位置：%f, %f
- 时间段：%s
- 天气：%s
- 最近去过：%s

可选餐厅：
%s

请从可选餐厅中挑选3-5家，按分数从高到低返回，格式如下：
{
  "recommendations": [
    {
      "restaurantId": "餐厅ID",
      "score": 85,
      "reasons": ["理由1", "理由2"],
      "matchType": "perfect"
    }
  ]
}

评分标准（0-100）：菜系匹配度、距离、餐厅评分、价格匹配度、当前时间是否合适。
matchType 只能是 perfect、good、fair 之一。restaurantId 必须来自可选餐厅。`,
		orDefault(strings.Join(prefs.CuisineTypes, ", "), "不限"),
		priceRange.Min(), priceRange.Max(),
		maxDistance,
		orDefault(strings.Join(prefs.DietaryRestrictions, ", "), "无"),
		orDefault(prefs.PreferredTime, "未指定"),
		rc.Location.Latitude, rc.Location.Longitude,
		orDefault(rc.TimeOfDay, "未指定"),
		orDefault(rc.Weather, "未指定"),
		orDefault(strings.Join(rc.PreviousChoices, ", "), "无"),
		string(listJSON),
	)
	return prompt, nil
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// parseRecommendations はLLMの応答を信頼できない入力として1件ずつ検証する
// 未知のIDと2回目以降の同一IDは捨て、スコアは0〜100に丸め、不明なランクはfairにする
func parseRecommendations(content string, restaurants []*model.Restaurant) ([]model.Recommendation, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	entries, ok := payload["recommendations"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: recommendations配列がありません", ErrMalformedResponse)
	}

	recommendations := make([]model.Recommendation, 0, len(entries))
	emitted := make(map[string]bool, len(entries))
	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			continue
		}

		id := coerceID(entry["restaurantId"])
		restaurant := helper.FindByID(restaurants, id)
		if restaurant == nil {
			logging.Debug().Str("restaurant_id", id).Msg("⚠️ 候補に無い店舗IDを除外")
			continue
		}
		if emitted[id] {
			logging.Debug().Str("restaurant_id", id).Msg("⚠️ 重複した店舗IDを除外")
			continue
		}
		emitted[id] = true

		matchType, _ := model.ParseMatchType(coerceString(entry["matchType"]))
		recommendations = append(recommendations, model.Recommendation{
			Restaurant: restaurant,
			Score:      coerceScore(entry["score"]),
			Reasons:    coerceReasons(entry["reasons"]),
			MatchType:  matchType,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})
	return recommendations, nil
}

// stripCodeFence は ```json ... ``` で囲まれた応答から中身を取り出す
// 開始フェンスの言語タグは大文字小文字を問わず行末まで捨てる
func stripCodeFence(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexAny(s, "\n{["); i >= 0 {
		s = s[i:]
	} else {
		s = ""
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func coerceID(v any) string {
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return ""
	}
}

func coerceString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// coerceScore は数値または数値文字列を0〜100の整数にする。それ以外は0
func coerceScore(v any) int {
	var score float64
	switch s := v.(type) {
	case float64:
		score = s
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
		score = parsed
	default:
		return 0
	}
	if math.IsNaN(score) {
		return 0
	}
	return int(math.Round(math.Min(100, math.Max(0, score))))
}

// coerceReasons は理由を文字列のリストにする。空なら一般的な推薦理由を入れる
func coerceReasons(v any) []string {
	reasons := []string{}
	switch r := v.(type) {
	case []any:
		for _, item := range r {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				reasons = append(reasons, strings.TrimSpace(s))
			}
		}
	case string:
		if strings.TrimSpace(r) != "" {
			reasons = append(reasons, strings.TrimSpace(r))
		}
	case float64, bool:
		reasons = append(reasons, fmt.Sprint(r))
	}

	if len(reasons) == 0 {
		reasons = append(reasons, model.ReasonGeneral)
	}
	return reasons
}
