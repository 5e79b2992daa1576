package model

// POICategory 高徳地図のPOIカテゴリツリーのノード
// パッケージ初期化時に構築され、以後変更されない
type POICategory struct {
	Code          string         `json:"code"`
	Name          string         `json:"name"`
	Keywords      []string       `json:"keywords,omitempty"`
	Subcategories []*POICategory `json:"subcategories,omitempty"`
}

// ResolvedLocation IPアドレスなどから推定した現在地
type ResolvedLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
	Source    string  `json:"source,omitempty"`
}

// DefaultLocation 現在地が取得できない場合の既定値（北京）
func DefaultLocation() ResolvedLocation {
	return ResolvedLocation{
		Latitude:  39.9042,
		Longitude: 116.4074,
		Address:   "北京市",
		Source:    "default",
	}
}
