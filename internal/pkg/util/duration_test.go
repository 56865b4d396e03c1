package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpiryDuration_Valid(t *testing.T) {
	cases := []struct {
		token string
		want  time.Duration
	}{
		{"30Mins", 30 * time.Minute},
		{"5Mins", 5 * time.Minute},
		{"1Hour", time.Hour},
		{"24Hours", 24 * time.Hour},
		{"2Hours", 2 * time.Hour},
	}

	for _, tc := range cases {
		got, err := ParseExpiryDuration(tc.token)
		require.NoError(t, err, tc.token)
		assert.Equal(t, tc.want, got, tc.token)
	}
}

func TestParseExpiryDuration_Invalid(t *testing.T) {
	for _, token := range []string{"", "30", "Mins", "30mins", "abcMins", "-5Mins", "0Mins", "30 Mins", "1Day"} {
		_, err := ParseExpiryDuration(token)
		assert.ErrorIs(t, err, ErrBadDurationToken, token)
	}
}

func TestParseExpiryDuration_ZeroAmount(t *testing.T) {
	_, err := ParseExpiryDuration("0Hours")
	require.ErrorIs(t, err, ErrBadDurationToken)
}
