package rankpager

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SQLExecutor_Placeholder(t *testing.T) {
	tests := []struct {
		driverName string
		want       sq.PlaceholderFormat
	}{
		{"pgx", sq.Dollar},
		{"postgres", sq.Dollar},
		{"mysql", sq.Question},
		{"sqlite3", sq.Question},
		{"sqlserver", sq.AtP},
		{"oci8", sq.Colon},
	}
	for _, tt := range tests {
		t.Run(tt.driverName, func(t *testing.T) {
			mockDB, _, err := sqlmock.New()
			require.NoError(t, err)
			defer mockDB.Close()

			e := NewSQLExecutor(sqlx.NewDb(mockDB, tt.driverName))
			require.Equal(t, tt.want, e.Placeholder())
		})
	}
}

func Test_GORMExecutor_Placeholder(t *testing.T) {
	for _, mockFn := range []func() (string, Executor, sqlmock.Sqlmock, error){newGORMMySQLMock, newGORMPostgresMock} {
		dialect, e, _, err := mockFn()
		t.Run(dialect, func(t *testing.T) {
			require.NoError(t, err)
			require.Equal(t, sq.Question, e.Placeholder())
		})
	}
}

func Test_QueryRanked(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	for _, mockFn := range executorMockFnList {
		dialect, executor, dbMock, err := mockFn()
		t.Run(dialect, func(t *testing.T) {
			require.NoError(t, err)

			q, err := BuildRankedQuery(tUserSchema, RankedQuerySpec{
				Columns:     []string{"id", "name"},
				Orderings:   byName.WithTieBreaker("id"),
				StartIndex:  5,
				PageSize:    4,
				Placeholder: executor.Placeholder(),
			})
			require.NoError(t, err)

			dbMock.ExpectQuery(rankedQueryPattern("", 5)).
				WithArgs(5).
				WillReturnRows(
					sqlmock.NewRows([]string{"id", "name", "row_rank"}).
						AddRow(ids[0].String(), "Alice", 6).
						AddRow(ids[1].String(), "Bob", 7),
				)

			rows, err := QueryRanked(context.Background(), executor, tUserSchema, q)
			require.NoError(t, err)
			require.Equal(t, []RankedRow[tUser]{
				{Row: tUser{ID: ids[0], Name: "Alice"}, Rank: 6},
				{Row: tUser{ID: ids[1], Name: "Bob"}, Rank: 7},
			}, rows)

			assert.NoError(t, dbMock.ExpectationsWereMet())
		})
	}
}

func Test_QueryRanked_Errors(t *testing.T) {
	tests := []struct {
		name   string
		expect func(sqlmock.Sqlmock)
	}{
		{
			name: "query error",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(".*").WillReturnError(errors.New("connection reset"))
			},
		},
		{
			name: "scan error",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(".*").WillReturnRows(
					sqlmock.NewRows([]string{"id", "name", "row_rank"}).AddRow("not-a-uuid", "Alice", 1),
				)
			},
		},
		{
			name: "rows error",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(".*").WillReturnRows(
					sqlmock.NewRows([]string{"id", "name", "row_rank"}).
						AddRow(uuid.New().String(), "Alice", 1).
						RowError(0, errors.New("broken stream")),
				)
			},
		},
	}

	for _, mockFn := range executorMockFnList {
		for _, tt := range tests {
			dialect, executor, dbMock, err := mockFn()
			t.Run(fmt.Sprintf("%s %s", dialect, tt.name), func(t *testing.T) {
				require.NoError(t, err)

				q, err := BuildRankedQuery(tUserSchema, RankedQuerySpec{
					Columns:     []string{"id", "name"},
					Orderings:   byName,
					PageSize:    1,
					Placeholder: executor.Placeholder(),
				})
				require.NoError(t, err)

				tt.expect(dbMock)

				rows, err := QueryRanked(context.Background(), executor, tUserSchema, q)
				require.ErrorIs(t, err, ErrQuery)
				require.Nil(t, rows)
			})
		}
	}
}
