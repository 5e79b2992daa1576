// Package config は.envファイルと環境変数（viper経由）からアプリケーション設定を読み込む。
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"Lunch-App/internal/infrastructure/ai"
)

// 設定キー（環境変数名と同じ、viperでは小文字で扱う）
const (
	KeyPort                  = "port"
	KeyGinMode               = "gin_mode"
	KeyLogLevel              = "log_level"
	KeyLogFormat             = "log_format"
	KeySiliconAPIKey         = "silicon_api_key"
	KeySiliconBaseURL        = "silicon_base_url"
	KeySiliconModel          = "silicon_model"
	KeySiliconMaxTokens      = "silicon_max_tokens"
	KeySiliconTimeoutSeconds = "silicon_timeout_seconds"
	KeyAmapAPIKey            = "amap_api_key"
	KeyAmapSigSecret         = "amap_sig_secret"
	KeySupabaseURL           = "supabase_url"
	KeySupabaseAnonKey       = "supabase_anon_key"
	KeySupabaseDBPassword    = "supabase_db_password"
	KeyFirestoreProjectID    = "firestore_project_id"
	KeyFirestoreCredentials  = "google_application_credentials"
	KeyRecommendationTTL     = "recommendation_ttl_hours"
	KeyDefaultSearchRadius   = "default_search_radius"
)

// Config アプリケーション全体の設定
type Config struct {
	Server         ServerConfig
	Log            LogConfig
	Amap           AmapConfig
	Supabase       SupabaseConfig
	Firestore      FirestoreConfig
	Recommendation RecommendationConfig
}

type ServerConfig struct {
	Port    int
	GinMode string
}

type LogConfig struct {
	Level  string
	Format string
}

type AmapConfig struct {
	APIKey    string
	SigSecret string
}

// IsConfigured 高徳地図APIが使えるか
func (c AmapConfig) IsConfigured() bool { return c.APIKey != "" }

type SupabaseConfig struct {
	URL        string
	AnonKey    string
	DBPassword string
}

// HasREST Supabase REST API（好み設定の保存先）が使えるか
func (c SupabaseConfig) HasREST() bool { return c.URL != "" && c.AnonKey != "" }

// HasPostgres PostGISへの直接接続が使えるか
func (c SupabaseConfig) HasPostgres() bool { return c.URL != "" && c.DBPassword != "" }

type FirestoreConfig struct {
	ProjectID       string
	CredentialsFile string
}

func (c FirestoreConfig) IsConfigured() bool { return c.ProjectID != "" }

type RecommendationConfig struct {
	TTLHours      int
	DefaultRadius int
}

// LoadDotEnv は.envファイルを読み込む。ファイルが無い場合は環境変数のみを使う
func LoadDotEnv(paths ...string) bool {
	return godotenv.Load(paths...) == nil
}

// NewViper は既定値と環境変数の自動読み込みを設定したviperを作成する
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyPort, 8080)
	v.SetDefault(KeyGinMode, "release")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "json")
	v.SetDefault(KeySiliconBaseURL, ai.DefaultBaseURL)
	v.SetDefault(KeySiliconModel, ai.DefaultModel)
	v.SetDefault(KeySiliconMaxTokens, ai.DefaultMaxTokens)
	v.SetDefault(KeySiliconTimeoutSeconds, int(ai.DefaultTimeout/time.Second))
	v.SetDefault(KeyRecommendationTTL, 2)
	v.SetDefault(KeyDefaultSearchRadius, 1000)
	v.AutomaticEnv()
	return v
}

// ReadConfigFile は設定ファイルを読み込む（YAML/TOML/JSONなどviperが対応する形式）
func ReadConfigFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
	}
	return nil
}

// Load はviperから設定を組み立てて検証する
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:    v.GetInt(KeyPort),
			GinMode: v.GetString(KeyGinMode),
		},
		Log: LogConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
		Amap: AmapConfig{
			APIKey:    v.GetString(KeyAmapAPIKey),
			SigSecret: v.GetString(KeyAmapSigSecret),
		},
		Supabase: SupabaseConfig{
			URL:        v.GetString(KeySupabaseURL),
			AnonKey:    v.GetString(KeySupabaseAnonKey),
			DBPassword: v.GetString(KeySupabaseDBPassword),
		},
		Firestore: FirestoreConfig{
			ProjectID:       v.GetString(KeyFirestoreProjectID),
			CredentialsFile: v.GetString(KeyFirestoreCredentials),
		},
		Recommendation: RecommendationConfig{
			TTLHours:      v.GetInt(KeyRecommendationTTL),
			DefaultRadius: v.GetInt(KeyDefaultSearchRadius),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORTが不正です: %d", c.Server.Port))
	}
	if c.Recommendation.TTLHours <= 0 {
		errs = append(errs, fmt.Errorf("RECOMMENDATION_TTL_HOURSは1以上で指定してください: %d", c.Recommendation.TTLHours))
	}
	if c.Recommendation.DefaultRadius <= 0 || c.Recommendation.DefaultRadius > 50000 {
		errs = append(errs, fmt.Errorf("DEFAULT_SEARCH_RADIUSは1〜50000で指定してください: %d", c.Recommendation.DefaultRadius))
	}
	return errors.Join(errs...)
}

// LLMSettingsProvider はLLMの設定を呼び出しのたびにviperから読み直すプロバイダを返す
func LLMSettingsProvider(v *viper.Viper) func() ai.Settings {
	return func() ai.Settings {
		return ai.Settings{
			APIKey:    v.GetString(KeySiliconAPIKey),
			BaseURL:   v.GetString(KeySiliconBaseURL),
			Model:     v.GetString(KeySiliconModel),
			MaxTokens: v.GetInt(KeySiliconMaxTokens),
			Timeout:   time.Duration(v.GetInt(KeySiliconTimeoutSeconds)) * time.Second,
		}
	}
}
