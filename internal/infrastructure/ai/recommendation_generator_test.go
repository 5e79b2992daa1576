package ai

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Lunch-App/internal/domain/model"
)

func meters(v float64) *float64 { return &v }

func sampleRestaurants() []*model.Restaurant {
	return []*model.Restaurant{
		{ID: "r1", Name: "川味小馆", Category: "四川菜(川菜)", Rating: 4.5, PriceLevel: 2, IsOpen: true, Distance: meters(300)},
		{ID: "r2", Name: "老火锅", Category: "火锅店", Rating: 4.0, PriceLevel: 3, IsOpen: true, Distance: meters(900)},
		{ID: "r3", Name: "轻食", Category: "轻食/沙拉", Rating: 3.8, PriceLevel: 1},
	}
}

func TestParseRecommendations(t *testing.T) {
	t.Run("未知のIDは除外し、スコアを丸め、不明なランクはfair", func(t *testing.T) {
		content := `{"recommendations":[
			{"restaurantId":"r1","score":150,"reasons":["spicy"],"matchType":"amazing"},
			{"restaurantId":"ghost","score":90,"reasons":["x"],"matchType":"perfect"}
		]}`

		recs, err := parseRecommendations(content, sampleRestaurants())
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "r1", recs[0].Restaurant.ID)
		assert.Equal(t, 100, recs[0].Score)
		assert.Equal(t, model.MatchTypeFair, recs[0].MatchType)
		assert.Equal(t, []string{"spicy"}, recs[0].Reasons)
	})

	t.Run("数値文字列や欠損を補正し降順に並べる", func(t *testing.T) {
		content := `{"recommendations":[
			{"restaurantId":"r2","score":"72.4","reasons":"hot pot night","matchType":"Good"},
			{"restaurantId":"r3","reasons":[]},
			{"restaurantId":"r1","score":-5,"reasons":[1, "cheap", ""],"matchType":"perfect"},
			"garbage"
		]}`

		recs, err := parseRecommendations(content, sampleRestaurants())
		require.NoError(t, err)
		require.Len(t, recs, 3)

		assert.Equal(t, "r2", recs[0].Restaurant.ID)
		assert.Equal(t, 72, recs[0].Score)
		assert.Equal(t, []string{"hot pot night"}, recs[0].Reasons)
		assert.Equal(t, model.MatchTypeGood, recs[0].MatchType)

		// 同点(0)は応答の順序を保つ
		assert.Equal(t, "r3", recs[1].Restaurant.ID)
		assert.Equal(t, 0, recs[1].Score)
		assert.Equal(t, []string{model.ReasonGeneral}, recs[1].Reasons)
		assert.Equal(t, model.MatchTypeFair, recs[1].MatchType)

		assert.Equal(t, "r1", recs[2].Restaurant.ID)
		assert.Equal(t, 0, recs[2].Score)
		assert.Equal(t, []string{"cheap"}, recs[2].Reasons)
	})

	t.Run("コードフェンスを取り除く", func(t *testing.T) {
		content := "```json\n{\"recommendations\":[{\"restaurantId\":\"r3\",\"score\":61,\"reasons\":[\"light\"],\"matchType\":\"good\"}]}\n```"
		recs, err := parseRecommendations(content, sampleRestaurants())
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, 61, recs[0].Score)
	})

	t.Run("言語タグの大文字小文字を問わずフェンスを取り除く", func(t *testing.T) {
		body := `{"recommendations":[{"restaurantId":"r1","score":80,"matchType":"good"}]}`
		for _, content := range []string{
			"```JSON\n" + body + "\n```",
			"```Json\n" + body + "\n```",
			"```\n" + body + "\n```",
			"```json " + body + "```",
		} {
			recs, err := parseRecommendations(content, sampleRestaurants())
			require.NoError(t, err, content)
			require.Len(t, recs, 1, content)
			assert.Equal(t, "r1", recs[0].Restaurant.ID)
		}
	})

	t.Run("重複した店舗IDは最初の1件だけ残す", func(t *testing.T) {
		content := `{"recommendations":[
			{"restaurantId":"r2","score":70,"reasons":["first"],"matchType":"good"},
			{"restaurantId":"r2","score":95,"reasons":["again"],"matchType":"perfect"},
			{"restaurantId":"r1","score":60,"reasons":["ok"],"matchType":"fair"}
		]}`

		recs, err := parseRecommendations(content, sampleRestaurants())
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, "r2", recs[0].Restaurant.ID)
		assert.Equal(t, 70, recs[0].Score)
		assert.Equal(t, []string{"first"}, recs[0].Reasons)
		assert.Equal(t, "r1", recs[1].Restaurant.ID)
	})

	t.Run("空の配列は空の結果", func(t *testing.T) {
		recs, err := parseRecommendations(`{"recommendations":[]}`, sampleRestaurants())
		require.NoError(t, err)
		assert.NotNil(t, recs)
		assert.Empty(t, recs)
	})

	t.Run("形式不正はエラー", func(t *testing.T) {
		for _, content := range []string{
			`not json`,
			`{"items":[]}`,
			`{"recommendations":"none"}`,
			`[]`,
		} {
			_, err := parseRecommendations(content, sampleRestaurants())
			assert.ErrorIs(t, err, ErrMalformedResponse, content)
		}
	})
}

func TestAIRecommendationRepository_GenerateRecommendations(t *testing.T) {
	var prompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		prompt = req.Messages[1].Content

		content := `{"recommendations":[{"restaurantId":"r2","score":70,"reasons":["warm"],"matchType":"good"},{"restaurantId":"r1","score":91,"reasons":["spicy"],"matchType":"perfect"}]}`
		resp := ChatCompletionResponse{Choices: []Choice{{Message: ChatMessage{Role: "assistant", Content: content}}}}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	repo := NewAIRecommendationRepository(newTestClient(server.URL, "sk-test"))
	require.True(t, repo.IsConfigured())

	rc := model.RecommendationContext{
		Location:    model.Location{Latitude: 31.2304, Longitude: 121.4737},
		Preferences: model.UserPreferences{CuisineTypes: []string{"川菜"}, PriceRange: model.PriceRange{1, 2}, PreferredTime: model.TimeOfDayLunch},
		TimeOfDay:   model.TimeOfDayLunch,
		Weather:     "sunny",
	}
	recs, err := repo.GenerateRecommendations(context.Background(), rc, sampleRestaurants())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "r1", recs[0].Restaurant.ID)
	assert.Equal(t, "r2", recs[1].Restaurant.ID)

	assert.Contains(t, prompt, "川菜")
	assert.Contains(t, prompt, "1-2级")
	assert.Contains(t, prompt, "sunny")
	assert.Contains(t, prompt, `"id": "r3"`)
	assert.Contains(t, prompt, fmt.Sprintf("%f", 31.2304))
}

func TestAIRecommendationRepository_RemoteFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	repo := NewAIRecommendationRepository(newTestClient(server.URL, "sk-test"))
	_, err := repo.GenerateRecommendations(context.Background(), model.RecommendationContext{}, sampleRestaurants())
	assert.Error(t, err)
}
