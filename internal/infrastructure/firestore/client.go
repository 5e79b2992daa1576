package firestore

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"Lunch-App/internal/logging"
)

// Config はFirestoreクライアントの設定
type Config struct {
	ProjectID       string
	CredentialsFile string // 空ならGOOGLE_APPLICATION_CREDENTIALS、それも無ければデフォルト認証
}

type FirestoreClient struct {
	client *firestore.Client
}

// NewFirestoreClient は認証情報ファイルがあればそれを、無ければデフォルト認証を使ってクライアントを作成する
func NewFirestoreClient(ctx context.Context, cfg Config) (*FirestoreClient, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("FIRESTORE_PROJECT_IDが設定されていません")
	}

	var opts []option.ClientOption
	credentialsFile := cfg.CredentialsFile
	if credentialsFile == "" {
		credentialsFile = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}
	if credentialsFile != "" {
		if _, err := os.Stat(credentialsFile); err == nil {
			logging.Info().Str("file", credentialsFile).Msg("📄 Using credentials file")
			opts = append(opts, option.WithCredentialsFile(credentialsFile))
		} else {
			logging.Warn().Str("file", credentialsFile).Msg("⚠️ Credentials file not found, trying with default authentication")
		}
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	logging.Info().Str("project", cfg.ProjectID).Msg("✅ Firestore client initialized")
	return &FirestoreClient{client: client}, nil
}

func (fc *FirestoreClient) Close() error {
	return fc.client.Close()
}

func (fc *FirestoreClient) GetClient() *firestore.Client {
	return fc.client
}
