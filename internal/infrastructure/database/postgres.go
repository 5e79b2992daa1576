package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"Lunch-App/internal/logging"
)

// PostgresConfig はSupabase上のPostgreSQLへの接続設定
type PostgresConfig struct {
	SupabaseURL string // https://xxx.supabase.co
	Password    string
	Port        int // 既定: 6543 (接続プーラー)
	MaxRetries  int
}

// PostgreSQLClient PostgreSQL直接接続クライアント
type PostgreSQLClient struct {
	DB *sql.DB
}

// ConnString はSupabaseのURLからPostgreSQL接続文字列を構築する
func (c PostgresConfig) ConnString() (string, error) {
	if c.SupabaseURL == "" {
		return "", fmt.Errorf("SUPABASE_URLが設定されていません")
	}
	if c.Password == "" {
		return "", fmt.Errorf("SUPABASE_DB_PASSWORDが設定されていません")
	}

	u, err := url.Parse(c.SupabaseURL)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("SUPABASE_URLの形式が不正です: %s", c.SupabaseURL)
	}
	host := u.Hostname()
	if !strings.HasPrefix(host, "db.") {
		host = "db." + host
	}

	port := c.Port
	if port == 0 {
		port = 6543
	}

	return fmt.Sprintf(
		"host=%s port=%d user=postgres password=%s dbname=postgres sslmode=require",
		host, port, c.Password,
	), nil
}

// NewPostgreSQLClient 新しいPostgreSQLクライアントを作成し、接続を確認する
func NewPostgreSQLClient(ctx context.Context, cfg PostgresConfig) (*PostgreSQLClient, error) {
	connStr, err := cfg.ConnString()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("PostgreSQL接続の初期化に失敗: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 1
	}
	for attempt := 1; attempt <= retries; attempt++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		logging.Warn().Err(err).Int("attempt", attempt).Msg("⚠️ PostgreSQLへの接続に失敗")
		if attempt < retries {
			time.Sleep(time.Duration(attempt) * time.Second)
		}
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("PostgreSQLへの接続に失敗: %w", err)
	}

	logging.Info().Msg("✅ PostgreSQL connection established")
	return &PostgreSQLClient{DB: db}, nil
}

// Close データベース接続を閉じる
func (pc *PostgreSQLClient) Close() error {
	if pc.DB != nil {
		return pc.DB.Close()
	}
	return nil
}

// HealthCheck データベース接続のヘルスチェック
func (pc *PostgreSQLClient) HealthCheck(ctx context.Context) error {
	if pc.DB == nil {
		return fmt.Errorf("PostgreSQLクライアントが初期化されていません")
	}
	return pc.DB.PingContext(ctx)
}
