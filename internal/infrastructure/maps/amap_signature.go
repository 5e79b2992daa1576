package maps

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// signParams は高徳Web APIのデジタル署名を計算する。
// パラメータをキー順に並べた "path?k=v&..." に秘密鍵を連結したもののMD5（16進小文字）
func signParams(path string, params url.Values, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "sig" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, v := range params[k] {
			pairs = append(pairs, k+"="+v)
		}
	}

	sum := md5.Sum([]byte(path + "?" + strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
