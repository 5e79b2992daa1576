package helper

import (
	"regexp"
	"strconv"
	"time"
)

var openingRangePattern = regexp.MustCompile(`(\d{1,2}):(\d{2})-(\d{1,2}):(\d{2})`)

// IsOpenAt は営業時間テキスト（例: "10:00-14:00 17:00-21:30"）から指定時刻に営業中かを判定する。
// テキストが無い、または時間帯が読み取れない場合は営業中とみなす
func IsOpenAt(openingHours string, t time.Time) bool {
	if openingHours == "" {
		return true
	}

	matches := openingRangePattern.FindAllStringSubmatch(openingHours, -1)
	if len(matches) == 0 {
		return true
	}

	current := t.Hour()*60 + t.Minute()
	for _, m := range matches {
		start := toMinutes(m[1], m[2])
		end := toMinutes(m[3], m[4])
		if start <= end {
			if current >= start && current <= end {
				return true
			}
			continue
		}
		// 日付をまたぐ営業（例: 18:00-02:00）
		if current >= start || current <= end {
			return true
		}
	}
	return false
}

func toMinutes(hour, minute string) int {
	h, _ := strconv.Atoi(hour)
	m, _ := strconv.Atoi(minute)
	return h*60 + m
}
