package repository

import "errors"

var (
	// ErrNotFound 指定されたデータが存在しない（期限切れを含む）
	ErrNotFound = errors.New("データが見つかりません")
	// ErrNotConfigured 外部サービスの認証情報が設定されていない
	ErrNotConfigured = errors.New("外部サービスが設定されていません")
)
