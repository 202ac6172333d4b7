package rankpager

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Limits_Normalize(t *testing.T) {
	limits := Limits{Default: 20, Max: 50}

	tests := []struct {
		name      string
		limits    Limits
		requested int
		want      int
		unchanged bool
	}{
		{"absent request", limits, 0, 20, false},
		{"negative request", limits, -7, 20, false},
		{"smallest page", limits, 1, 1, true},
		{"exactly max", limits, 50, 50, true},
		{"over max", limits, 51, 50, false},
		{"default over max", Limits{Default: 30, Max: 5}, 0, 5, false},
		{"package defaults", DefaultLimits, 1000, DefaultLimits.Max, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, unchanged := tt.limits.Normalize(tt.requested)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.unchanged, unchanged)
		})
	}
}

func Test_Limits_Validate(t *testing.T) {
	require.NoError(t, DefaultLimits.Validate())
	require.NoError(t, Limits{Default: 1, Max: 1}.Validate())

	for _, l := range []Limits{{}, {Default: -1, Max: 10}, {Default: 10, Max: 9}} {
		err := l.Validate()
		require.ErrorIs(t, err, ErrInvalidPageSize)
	}
}
