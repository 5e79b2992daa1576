package model

import "time"

// TimeOfDayConstants は推薦コンテキストで使用する時間帯の定数
const (
	TimeOfDayBreakfast = "breakfast"
	TimeOfDayLunch     = "lunch"
	TimeOfDayDinner    = "dinner"
	TimeOfDaySnack     = "snack"
)

// RecommendationSourceConstants は推薦結果の生成元
const (
	SourceAI        = "ai"
	SourceHeuristic = "heuristic"
)

// ReasonConstants はヒューリスティック推薦で付与する理由文
const (
	ReasonWalkable      = "very close, walkable"
	ReasonHighlyRated   = "highly rated"
	ReasonPriceFits     = "price fits"
	ReasonCuisineMatch  = "matches cuisine preference"
	ReasonCurrentlyOpen = "currently open"
	ReasonGeneral       = "general recommendation"
)

// TimeOfDayNameMap は時間帯IDから表示名へのマッピング
var TimeOfDayNameMap = map[string]string{
	TimeOfDayBreakfast: "早餐",
	TimeOfDayLunch:     "午餐",
	TimeOfDayDinner:    "晚餐",
	TimeOfDaySnack:     "小吃",
}

// TimeOfDayAt は時刻から時間帯を判定する
// 6〜9時: 朝食、11〜13時: 昼食、17〜20時: 夕食、それ以外: 軽食
func TimeOfDayAt(t time.Time) string {
	hour := t.Hour()
	switch {
	case hour >= 6 && hour <= 9:
		return TimeOfDayBreakfast
	case hour >= 11 && hour <= 13:
		return TimeOfDayLunch
	case hour >= 17 && hour <= 20:
		return TimeOfDayDinner
	default:
		return TimeOfDaySnack
	}
}

// IsValidTimeOfDay は時間帯IDが既知のものかチェックする
func IsValidTimeOfDay(v string) bool {
	_, ok := TimeOfDayNameMap[v]
	return ok
}

// GetTimeOfDayName は時間帯IDから表示名を取得する
func GetTimeOfDayName(v string) string {
	if name, ok := TimeOfDayNameMap[v]; ok {
		return name
	}
	return v // デフォルトはそのまま返す
}
