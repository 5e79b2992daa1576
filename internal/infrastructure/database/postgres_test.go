package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresConfig_ConnString(t *testing.T) {
	t.Run("SupabaseのURLからホストを組み立てる", func(t *testing.T) {
		conn, err := PostgresConfig{SupabaseURL: "https://abcd.supabase.co", Password: "pw"}.ConnString()
		require.NoError(t, err)
		assert.Equal(t, "host=db.abcd.supabase.co port=6543 user=postgres password=pw dbname=postgres sslmode=require", conn)
	})

	t.Run("ポート指定", func(t *testing.T) {
		conn, err := PostgresConfig{SupabaseURL: "https://db.abcd.supabase.co/", Password: "pw", Port: 5432}.ConnString()
		require.NoError(t, err)
		assert.Contains(t, conn, "host=db.abcd.supabase.co port=5432")
	})

	t.Run("未設定はエラー", func(t *testing.T) {
		_, err := PostgresConfig{Password: "pw"}.ConnString()
		assert.Error(t, err)
		_, err = PostgresConfig{SupabaseURL: "https://abcd.supabase.co"}.ConnString()
		assert.Error(t, err)
	})
}

func TestNewSupabaseClient_RequiresCredentials(t *testing.T) {
	_, err := NewSupabaseClient("", "key")
	assert.Error(t, err)
	_, err = NewSupabaseClient("https://abcd.supabase.co", "")
	assert.Error(t, err)
}
