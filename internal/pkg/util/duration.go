package util

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

// 接受 "30Mins"、"1Hour"、"24Hours" 这类有效期标记
var durationTokenRegex = regexp.MustCompile(`^(\d+)(Mins|Hour|Hours)$`)

var ErrBadDurationToken = errors.New("unrecognized duration token")

// ParseExpiryDuration 把有效期标记解析为时长，数量必须为正
func ParseExpiryDuration(token string) (time.Duration, error) {
	matches := durationTokenRegex.FindStringSubmatch(token)
	if matches == nil {
		return 0, ErrBadDurationToken
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil || amount <= 0 {
		return 0, ErrBadDurationToken
	}

	switch matches[2] {
	case "Mins":
		return time.Duration(amount) * time.Minute, nil
	default:
		return time.Duration(amount) * time.Hour, nil
	}
}
