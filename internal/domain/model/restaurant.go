package model

// LatLng 緯度経度を表す基本的な型（距離計算などで使用）
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location APIリクエスト/レスポンスで使用する位置情報
type Location struct {
	Latitude  float64 `json:"latitude" firestore:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" firestore:"longitude" validate:"min=-180,max=180"`
}

// ToLatLng Location を LatLng に変換
func (l Location) ToLatLng() LatLng {
	return LatLng{Lat: l.Latitude, Lng: l.Longitude}
}

// Restaurant 推薦対象となる飲食店
// 1回の推薦処理の中では不変として扱う
type Restaurant struct {
	ID           string   `json:"id" db:"id" firestore:"id"`
	Name         string   `json:"name" db:"name" firestore:"name"`
	Address      string   `json:"address" db:"address" firestore:"address"`
	Phone        *string  `json:"phone,omitempty" db:"phone" firestore:"phone"`
	Latitude     float64  `json:"latitude" db:"latitude" firestore:"latitude"`
	Longitude    float64  `json:"longitude" db:"longitude" firestore:"longitude"`
	Category     string   `json:"category" db:"category" firestore:"category"`
	Rating       float64  `json:"rating" db:"rating" firestore:"rating"`              // 0〜5
	PriceLevel   int      `json:"priceLevel" db:"price_level" firestore:"priceLevel"` // 1〜4
	IsOpen       bool     `json:"isOpen" db:"is_open" firestore:"isOpen"`
	OpeningHours *string  `json:"openingHours,omitempty" db:"opening_hours" firestore:"openingHours"`
	Photos       []string `json:"photos,omitempty" db:"photos" firestore:"photos"`
	Distance     *float64 `json:"distance,omitempty" db:"distance" firestore:"distance"` // メートル、不明ならnil
}

// ToLatLng 店舗の位置情報をLatLng型に変換
func (r *Restaurant) ToLatLng() LatLng {
	return LatLng{Lat: r.Latitude, Lng: r.Longitude}
}

// HasDistance 距離が判明しているかチェック
func (r *Restaurant) HasDistance() bool {
	return r.Distance != nil
}

// GetPhone 電話番号が存在する場合は値を、存在しない場合は空文字列を返す
func (r *Restaurant) GetPhone() string {
	if r.Phone != nil {
		return *r.Phone
	}
	return ""
}

// GetOpeningHours 営業時間テキストを返す（未設定なら空文字列）
func (r *Restaurant) GetOpeningHours() string {
	if r.OpeningHours != nil {
		return *r.OpeningHours
	}
	return ""
}

// WithDistance 距離を設定したコピーを返す（元の値は変更しない）
func (r *Restaurant) WithDistance(meters float64) *Restaurant {
	copied := *r
	copied.Distance = &meters
	return &copied
}

// SearchParams 周辺店舗検索の条件
type SearchParams struct {
	Location LatLng
	Radius   int      // メートル、0ならプロバイダのデフォルト
	Keywords string   // 任意のキーワード
	Types    []string // POIカテゴリコード、空なら飲食全般
}
