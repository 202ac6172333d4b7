package users

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Alp4ka/rankpager"
)

func Test_Filter_Equal(t *testing.T) {
	base := Filter{Name: "John", Surname: "Doe", Email: "john@example.com", Sort: DefaultSort}

	tests := []struct {
		name  string
		other Filter
		want  bool
	}{
		{"identical", base, true},
		{"other name", Filter{Name: "Jane", Surname: "Doe", Email: "john@example.com", Sort: DefaultSort}, false},
		{"other surname", Filter{Name: "John", Surname: "Roe", Email: "john@example.com", Sort: DefaultSort}, false},
		{"other email", Filter{Name: "John", Surname: "Doe", Sort: DefaultSort}, false},
		{
			"other direction",
			Filter{
				Name: "John", Surname: "Doe", Email: "john@example.com",
				Sort: rankpager.Orderings{
					{Column: "surname", Direction: rankpager.DirectionDESC},
					{Column: "name", Direction: rankpager.DirectionASC},
				},
			},
			false,
		},
		{"no ordering", Filter{Name: "John", Surname: "Doe", Email: "john@example.com"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, base.Equal(tt.other))
			require.Equal(t, tt.want, tt.other.Equal(base))
		})
	}
}

func Test_Filter_Conditions(t *testing.T) {
	require.Empty(t, NewFilter().Conditions())
	require.Equal(
		t,
		map[string]any{"name": "John", "email": "john@example.com"},
		Filter{Name: "John", Email: "john@example.com"}.Conditions(),
	)
}

func Test_Filter_Orderings(t *testing.T) {
	require.Equal(t, DefaultSort, Filter{}.Orderings())

	custom := rankpager.Orderings{{Column: "email", Direction: rankpager.DirectionDESC}}
	require.Equal(t, custom, Filter{Sort: custom}.Orderings())
}

func Test_Filter_CursorRoundtrip(t *testing.T) {
	filter := Filter{Name: "John", Sort: DefaultSort}
	id := uuid.New()

	cursor := rankpager.DecodeRankCursor[Filter](rankpager.EncodeRankCursor(id, filter, 40))
	require.NotNil(t, cursor)
	require.True(t, filter.Equal(cursor.GetEntity()))
	require.Equal(t, id, cursor.GetLastID())
	require.Equal(t, 40, cursor.GetPosition())

	require.Equal(t, 0, rankpager.ComputeOffset(cursor.String(), 10, true, Filter{Name: "Jane", Sort: DefaultSort}))
	require.Equal(t, 50, rankpager.ComputeOffset(cursor.String(), 10, true, filter))
	require.Equal(t, 30, rankpager.ComputeOffset(cursor.String(), 10, false, filter))
}

func Test_Schema(t *testing.T) {
	require.NoError(t, Schema.Validate())
	require.Equal(t, []string{"email", "id", "name", "surname"}, Schema.Fields.Columns())

	u := User{ID: uuid.New()}
	require.Equal(t, u.ID, Schema.Identity(u))
	require.Equal(t, TableName, u.TableName())
}
