// Package geoip はIPアドレスから現在地を推定する。
// 複数の公開サービスを順に試し、最初に成功した結果を使う
package geoip

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"Lunch-App/internal/domain/model"
	"Lunch-App/internal/domain/repository"
	"Lunch-App/internal/logging"
)

// ErrAllProvidersFailed はすべての位置推定サービスが失敗した
var ErrAllProvidersFailed = errors.New("すべてのIP位置推定サービスが利用できません")

// Endpoints は各サービスの接続先
type Endpoints struct {
	IPAPI   string
	IPWhois string
	IPInfo  string
}

// DefaultEndpoints は本番の接続先
func DefaultEndpoints() Endpoints {
	return Endpoints{
		IPAPI:   "http://ip-api.com",
		IPWhois: "https://ipwho.is",
		IPInfo:  "https://ipinfo.io",
	}
}

type locateFunc func(ctx context.Context, ip string) (*model.ResolvedLocation, error)

type namedLocator struct {
	name   string
	locate locateFunc
}

// IPLocationProvider はIPアドレスから現在地を推定するプロバイダ
type IPLocationProvider struct {
	endpoints  Endpoints
	httpClient *http.Client
	locators   []namedLocator
}

// NewIPLocationProvider は新しいプロバイダを生成する
func NewIPLocationProvider(endpoints Endpoints) *IPLocationProvider {
	p := &IPLocationProvider{
		endpoints:  endpoints,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
	p.locators = []namedLocator{
		{name: "ip-api", locate: p.locateByIPAPI},
		{name: "ipwhois", locate: p.locateByIPWhois},
		{name: "ipinfo", locate: p.locateByIPInfo},
	}
	return p
}

// NewIPLocationRepository はプロバイダをリポジトリとして返す
func NewIPLocationRepository(endpoints Endpoints) repository.LocationRepository {
	return NewIPLocationProvider(endpoints)
}

// LocateByIP は指定IP（空なら呼び出し元のIP）の現在地を推定する
func (p *IPLocationProvider) LocateByIP(ctx context.Context, ip string) (*model.ResolvedLocation, error) {
	var errs []error
	for _, l := range p.locators {
		loc, err := l.locate(ctx, ip)
		if err == nil && loc != nil && loc.Latitude != 0 && loc.Longitude != 0 {
			loc.Source = l.name
			return loc, nil
		}
		if err == nil {
			err = errors.New("座標が空です")
		}
		logging.Warn().Err(err).Str("service", l.name).Msg("⚠️ IP位置推定サービスが失敗")
		errs = append(errs, fmt.Errorf("%s: %w", l.name, err))
	}
	return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, errors.Join(errs...))
}

func (p *IPLocationProvider) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Accept", "application/json")

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

func (p *IPLocationProvider) locateByIPAPI(ctx context.Context, ip string) (*model.ResolvedLocation, error) {
	var data struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
		City    string  `json:"city"`
		Country string  `json:"country"`
	}
	url := fmt.Sprintf("%s/json/%s?fields=status,message,lat,lon,city,country", p.endpoints.IPAPI, ip)
	if err := p.getJSON(ctx, url, &data); err != nil {
		return nil, err
	}
	if data.Status != "success" {
		return nil, fmt.Errorf("ip-api: %s", orDefault(data.Message, "失敗"))
	}
	return &model.ResolvedLocation{
		Latitude:  data.Lat,
		Longitude: data.Lon,
		Address:   joinAddress(data.City, data.Country),
	}, nil
}

func (p *IPLocationProvider) locateByIPWhois(ctx context.Context, ip string) (*model.ResolvedLocation, error) {
	var data struct {
		Success   bool    `json:"success"`
		Message   string  `json:"message"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		City      string  `json:"city"`
		Region    string  `json:"region"`
		Country   string  `json:"country"`
	}
	url := fmt.Sprintf("%s/%s", p.endpoints.IPWhois, ip)
	if err := p.getJSON(ctx, url, &data); err != nil {
		return nil, err
	}
	if !data.Success {
		return nil, fmt.Errorf("ipwhois: %s", orDefault(data.Message, "失敗"))
	}
	return &model.ResolvedLocation{
		Latitude:  data.Latitude,
		Longitude: data.Longitude,
		Address:   joinAddress(data.City, data.Region, data.Country),
	}, nil
}

func (p *IPLocationProvider) locateByIPInfo(ctx context.Context, ip string) (*model.ResolvedLocation, error) {
	var data struct {
		Loc     string `json:"loc"`
		City    string `json:"city"`
		Region  string `json:"region"`
		Country string `json:"country"`
	}
	path := "/json"
	if ip != "" {
		path = "/" + ip + "/json"
	}
	if err := p.getJSON(ctx, p.endpoints.IPInfo+path, &data); err != nil {
		return nil, err
	}

	parts := strings.Split(data.Loc, ",")
	if len(parts) != 2 {
		return nil, errors.New("ipinfo: 位置情報を取得できません")
	}
	lat, errLat := strconv.ParseFloat(parts[0], 64)
	lng, errLng := strconv.ParseFloat(parts[1], 64)
	if errLat != nil || errLng != nil {
		return nil, fmt.Errorf("ipinfo: 位置情報の形式が不正: %q", data.Loc)
	}
	return &model.ResolvedLocation{
		Latitude:  lat,
		Longitude: lng,
		Address:   joinAddress(data.City, data.Region, data.Country),
	}, nil
}

func joinAddress(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
