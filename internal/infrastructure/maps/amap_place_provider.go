package maps

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"Lunch-App/internal/domain/helper"
	"Lunch-App/internal/domain/model"
	"Lunch-App/internal/domain/repository"
	"Lunch-App/internal/domain/taxonomy"
	"Lunch-App/internal/logging"
	"Lunch-App/internal/metrics"
)

const (
	amapBaseURL      = "https://restapi.amap.com"
	placeAroundPath  = "/v5/place/around"
	placeDetailPath  = "/v5/place/detail"
	regeoPath        = "/v3/geocode/regeo"
	defaultRadius    = 1000
	defaultPageSize  = 20
	fallbackCategory = "餐饮"
	providerName     = "amap"
)

// AmapPlaceProvider は高徳地図Web APIを使用した店舗検索の実装
type AmapPlaceProvider struct {
	apiKey     string
	sigSecret  string
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewAmapPlaceProvider は新しいプロバイダを生成する
// sigSecretが空の場合はリクエストに署名しない
func NewAmapPlaceProvider(apiKey, sigSecret string) *AmapPlaceProvider {
	return &AmapPlaceProvider{
		apiKey:     apiKey,
		sigSecret:  sigSecret,
		baseURL:    amapBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
}

// WithBaseURL は接続先を差し替えたプロバイダを返す（テスト用）
func (p *AmapPlaceProvider) WithBaseURL(baseURL string) *AmapPlaceProvider {
	copied := *p
	copied.baseURL = strings.TrimRight(baseURL, "/")
	return &copied
}

// WithClock は営業判定に使う時計を差し替えたプロバイダを返す（テスト用）
func (p *AmapPlaceProvider) WithClock(now func() time.Time) *AmapPlaceProvider {
	copied := *p
	copied.now = now
	return &copied
}

// amapPlaceResponse は高徳地図の検索APIのレスポンス
type amapPlaceResponse struct {
	Status string    `json:"status"`
	Info   string    `json:"info"`
	POIs   []amapPOI `json:"pois"`
}

type amapPOI struct {
	ID       flexString    `json:"id"`
	Name     flexString    `json:"name"`
	Address  flexString    `json:"address"`
	Tel      flexString    `json:"tel"`
	Location flexString    `json:"location"`
	Type     flexString    `json:"type"`
	Typecode flexString    `json:"typecode"`
	BizExt   *amapBusiness `json:"biz_ext"`
	Business *amapBusiness `json:"business"`
	BizTime  flexString    `json:"biz_time"`
	Photos   []amapPhoto   `json:"photos"`
	Distance flexString    `json:"distance"`
}

type amapBusiness struct {
	Rating        flexString `json:"rating"`
	Cost          flexString `json:"cost"`
	Tel           flexString `json:"tel"`
	OpentimeToday flexString `json:"opentime_today"`
}

type amapPhoto struct {
	URL flexString `json:"url"`
}

type amapRegeoResponse struct {
	Status    string `json:"status"`
	Info      string `json:"info"`
	Regeocode struct {
		FormattedAddress flexString `json:"formatted_address"`
	} `json:"regeocode"`
}

// flexString は文字列・数値・空配列のいずれでも返ってくるフィールドを文字列として扱う
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
	case '[':
		var items []flexString
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		parts := make([]string, 0, len(items))
		for _, item := range items {
			if item != "" {
				parts = append(parts, string(item))
			}
		}
		*f = flexString(strings.Join(parts, ";"))
	default:
		*f = flexString(data)
	}
	return nil
}

// SearchNearby は指定地点の周辺で飲食店を検索する
func (p *AmapPlaceProvider) SearchNearby(ctx context.Context, params model.SearchParams) ([]*model.Restaurant, error) {
	if p.apiKey == "" {
		return nil, repository.ErrNotConfigured
	}

	radius := params.Radius
	if radius <= 0 {
		radius = defaultRadius
	}
	types := taxonomy.DefaultCode
	if len(params.Types) > 0 {
		types = strings.Join(params.Types, "|")
	}

	query := url.Values{}
	query.Set("key", p.apiKey)
	query.Set("location", fmt.Sprintf("%s,%s", formatCoord(params.Location.Lng), formatCoord(params.Location.Lat)))
	query.Set("radius", strconv.Itoa(radius))
	query.Set("types", types)
	query.Set("page_size", strconv.Itoa(defaultPageSize))
	query.Set("page_num", "1")
	query.Set("show_fields", "business,photos")
	if params.Keywords != "" {
		query.Set("keywords", params.Keywords)
	}

	var resp amapPlaceResponse
	err := p.get(ctx, placeAroundPath, query, &resp)
	if err == nil && resp.Status != "1" {
		err = fmt.Errorf("店舗検索に失敗: %s", resp.Info)
	}
	metrics.RecordPlaceSearch(providerName, err)
	if err != nil {
		return nil, err
	}

	restaurants := make([]*model.Restaurant, 0, len(resp.POIs))
	for _, poi := range resp.POIs {
		r, err := p.toRestaurant(poi)
		if err != nil {
			logging.Debug().Err(err).Str("poi_id", string(poi.ID)).Msg("⚠️ 位置情報が不正なPOIをスキップ")
			continue
		}
		restaurants = append(restaurants, r)
	}

	logging.Info().Int("count", len(restaurants)).Int("radius", radius).Str("types", types).Msg("📍 高徳地図で店舗を検索")
	return helper.EnsureDistances(params.Location, restaurants), nil
}

// GetByID は店舗の詳細を取得する
func (p *AmapPlaceProvider) GetByID(ctx context.Context, id string) (*model.Restaurant, error) {
	if p.apiKey == "" {
		return nil, repository.ErrNotConfigured
	}

	query := url.Values{}
	query.Set("key", p.apiKey)
	query.Set("id", id)
	query.Set("show_fields", "business,photos")

	var resp amapPlaceResponse
	if err := p.get(ctx, placeDetailPath, query, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "1" {
		return nil, fmt.Errorf("店舗詳細の取得に失敗: %s", resp.Info)
	}
	if len(resp.POIs) == 0 {
		return nil, fmt.Errorf("店舗 %s: %w", id, repository.ErrNotFound)
	}

	return p.toRestaurant(resp.POIs[0])
}

// ReverseGeocode は座標から住所を取得する
func (p *AmapPlaceProvider) ReverseGeocode(ctx context.Context, loc model.LatLng) (string, error) {
	if p.apiKey == "" {
		return "", repository.ErrNotConfigured
	}

	query := url.Values{}
	query.Set("key", p.apiKey)
	query.Set("location", fmt.Sprintf("%s,%s", formatCoord(loc.Lng), formatCoord(loc.Lat)))

	var resp amapRegeoResponse
	if err := p.get(ctx, regeoPath, query, &resp); err != nil {
		return "", err
	}
	if resp.Status != "1" {
		return "", fmt.Errorf("逆ジオコーディングに失敗: %s", resp.Info)
	}
	return string(resp.Regeocode.FormattedAddress), nil
}

// get は署名付きでGETリクエストを送り、JSONをデコードする
func (p *AmapPlaceProvider) get(ctx context.Context, path string, query url.Values, out any) error {
	if p.sigSecret != "" {
		query.Set("sig", signParams(path, query, p.sigSecret))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("APIからエラーステータスが返されました: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("JSONのパースに失敗: %w", err)
	}
	return nil
}

// toRestaurant は高徳地図のPOIをドメインモデルに変換する
func (p *AmapPlaceProvider) toRestaurant(poi amapPOI) (*model.Restaurant, error) {
	lng, lat, err := parseLocation(string(poi.Location))
	if err != nil {
		return nil, err
	}

	biz := poi.BizExt
	if biz == nil {
		biz = poi.Business
	}
	var rating, cost, tel, openToday string
	if biz != nil {
		rating, cost, tel, openToday = string(biz.Rating), string(biz.Cost), string(biz.Tel), string(biz.OpentimeToday)
	}
	if poi.Tel != "" {
		tel = string(poi.Tel)
	}

	r := &model.Restaurant{
		ID:         string(poi.ID),
		Name:       string(poi.Name),
		Address:    string(poi.Address),
		Latitude:   lat,
		Longitude:  lng,
		Category:   categoryFor(string(poi.Type), string(poi.Typecode)),
		Rating:     parseRating(rating),
		PriceLevel: priceLevelForCost(cost),
		Photos:     []string{},
	}
	if tel != "" {
		r.Phone = &tel
	}

	openingHours := string(poi.BizTime)
	if openingHours == "" {
		openingHours = openToday
	}
	if openingHours != "" {
		r.OpeningHours = &openingHours
	}
	r.IsOpen = helper.IsOpenAt(openingHours, p.now())

	for _, photo := range poi.Photos {
		if photo.URL != "" {
			r.Photos = append(r.Photos, string(photo.URL))
		}
	}

	if d, err := strconv.ParseFloat(string(poi.Distance), 64); err == nil {
		r.Distance = &d
	}

	return r, nil
}

// parseLocation は "経度,緯度" 形式を解析する
func parseLocation(s string) (lng, lat float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("位置情報の形式が不正: %q", s)
	}
	if lng, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return 0, 0, fmt.Errorf("経度の解析に失敗: %w", err)
	}
	if lat, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return 0, 0, fmt.Errorf("緯度の解析に失敗: %w", err)
	}
	return lng, lat, nil
}

// categoryFor は "餐饮服务;中餐厅;四川菜(川菜)" のような分類テキストの末尾を使い、
// 無ければ分類コードから名称を引く
func categoryFor(typeText, typecode string) string {
	if typeText != "" {
		segments := strings.Split(typeText, ";")
		if last := strings.TrimSpace(segments[len(segments)-1]); last != "" {
			return last
		}
	}
	if typecode != "" {
		code := strings.Split(typecode, "|")[0]
		if _, ok := taxonomy.Lookup(code); ok {
			return taxonomy.CategoryName(code)
		}
	}
	return fallbackCategory
}

func parseRating(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	if v > 5 {
		return 5
	}
	return v
}

// priceLevelForCost は一人当たりの平均消費額（元）を1〜4の価格レベルにする
func priceLevelForCost(s string) int {
	cost, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || cost <= 0 {
		return model.MinPriceLevel
	}
	switch {
	case cost <= 30:
		return 1
	case cost <= 80:
		return 2
	case cost <= 150:
		return 3
	default:
		return 4
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
