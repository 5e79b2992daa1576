package model

// PriceRange 価格帯 [min, max]（1〜4）
// ゼロ値は「未設定」を表す
type PriceRange [2]int

const (
	MinPriceLevel = 1
	MaxPriceLevel = 4
)

// DefaultPriceRange 価格帯が未設定の場合に使う範囲
var DefaultPriceRange = PriceRange{MinPriceLevel, MaxPriceLevel}

// IsSet 価格帯が設定されているかチェック
func (p PriceRange) IsSet() bool {
	return p[0] != 0 || p[1] != 0
}

// Min 下限
func (p PriceRange) Min() int { return p[0] }

// Max 上限
func (p PriceRange) Max() int { return p[1] }

// Contains 価格レベルが範囲内（両端含む）かチェック
func (p PriceRange) Contains(level int) bool {
	return level >= p[0] && level <= p[1]
}

// Midpoint 範囲の中央値
func (p PriceRange) Midpoint() float64 {
	return float64(p[0]+p[1]) / 2
}

// OrDefault 未設定なら [1,4] を返す
func (p PriceRange) OrDefault() PriceRange {
	if !p.IsSet() {
		return DefaultPriceRange
	}
	return p
}

// Valid 1 <= min <= max <= 4 を満たすかチェック
func (p PriceRange) Valid() bool {
	return p[0] >= MinPriceLevel && p[0] <= p[1] && p[1] <= MaxPriceLevel
}

// UserPreferences ユーザーの好み
// コアロジックには値渡しされ、変更されない
type UserPreferences struct {
	CuisineTypes        []string   `json:"cuisineTypes" firestore:"cuisineTypes"`
	POITypes            []string   `json:"poiTypes,omitempty" firestore:"poiTypes"`
	PriceRange          PriceRange `json:"priceRange" firestore:"priceRange"`
	MaxDistance         float64    `json:"maxDistance" firestore:"maxDistance"` // メートル、0なら無制限
	DietaryRestrictions []string   `json:"dietaryRestrictions,omitempty" firestore:"dietaryRestrictions"`
	PreferredTime       string     `json:"preferredTime,omitempty" firestore:"preferredTime"`
}

// DefaultPreferences 保存済みの好みが無いユーザーに適用するデフォルト値
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		CuisineTypes:        []string{},
		POITypes:            []string{},
		PriceRange:          DefaultPriceRange,
		MaxDistance:         1000,
		DietaryRestrictions: []string{},
		PreferredTime:       TimeOfDayLunch,
	}
}

// PreferencesPatch 好みの部分更新リクエスト
// nilのフィールドは既存の値を維持する
type PreferencesPatch struct {
	CuisineTypes        *[]string   `json:"cuisineTypes"`
	POITypes            *[]string   `json:"poiTypes"`
	PriceRange          *PriceRange `json:"priceRange"`
	MaxDistance         *float64    `json:"maxDistance" validate:"omitempty,gte=0"`
	DietaryRestrictions *[]string   `json:"dietaryRestrictions"`
	PreferredTime       *string     `json:"preferredTime" validate:"omitempty,oneof=breakfast lunch dinner snack"`
}

// Apply パッチを適用した新しいUserPreferencesを返す
func (p *PreferencesPatch) Apply(base UserPreferences) UserPreferences {
	merged := base
	if p == nil {
		return merged
	}
	if p.CuisineTypes != nil {
		merged.CuisineTypes = append([]string{}, (*p.CuisineTypes)...)
	}
	if p.POITypes != nil {
		merged.POITypes = append([]string{}, (*p.POITypes)...)
	}
	if p.PriceRange != nil {
		merged.PriceRange = *p.PriceRange
	}
	if p.MaxDistance != nil {
		merged.MaxDistance = *p.MaxDistance
	}
	if p.DietaryRestrictions != nil {
		merged.DietaryRestrictions = append([]string{}, (*p.DietaryRestrictions)...)
	}
	if p.PreferredTime != nil {
		merged.PreferredTime = *p.PreferredTime
	}
	return merged
}
