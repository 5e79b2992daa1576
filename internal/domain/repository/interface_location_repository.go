package repository

import (
	"context"

	"Lunch-App/internal/domain/model"
)

// LocationRepository はIPアドレスから現在地を推定するリポジトリインターフェース
// ipが空の場合は呼び出し元のIPアドレスを使う
type LocationRepository interface {
	LocateByIP(ctx context.Context, ip string) (*model.ResolvedLocation, error)
}
