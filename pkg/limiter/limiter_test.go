package limiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLimit(t *testing.T) {
	cases := []struct {
		limit string
		want  float64
	}{
		{"5-S", 5},
		{"60-M", 1},
		{"3600-H", 1},
		{"86400-D", 1},
		{"30000-H", 30000.0 / 3600.0},
	}

	for _, tc := range cases {
		rate, err := ParseLimit(tc.limit)
		require.NoError(t, err, tc.limit)
		assert.InDelta(t, tc.want, rate.Rate, 1e-9, tc.limit)
	}
}

func TestParseLimitInvalid(t *testing.T) {
	for _, limit := range []string{"", "abc", "5", "5-X", "-S", "5-S-extra", "5/S"} {
		_, err := ParseLimit(limit)
		assert.Error(t, err, limit)
	}
}

func TestRouteToKeyString(t *testing.T) {
	assert.Equal(t, "-api-daily-rewards-claim", routeToKeyString("/api/daily-rewards/claim"))
	assert.Equal(t, "-api-users-_id", routeToKeyString("/api/users/:id"))
}
