package rankpager

import (
	"fmt"
	"regexp"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGORMMySQLMock() (string, Executor, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "gorm mysql", NewGORMExecutor(db.Debug()), mock, nil
}

func newGORMPostgresMock() (string, Executor, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := postgres.New(postgres.Config{
		Conn: mockDB,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "gorm postgres", NewGORMExecutor(db.Debug()), mock, nil
}

func newSQLXPostgresMock() (string, Executor, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	return "sqlx postgres", NewSQLExecutor(sqlx.NewDb(mockDB, "pgx")), mock, nil
}

func newSQLXMySQLMock() (string, Executor, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	return "sqlx mysql", NewSQLExecutor(sqlx.NewDb(mockDB, "mysql")), mock, nil
}

var executorMockFnList = []func() (string, Executor, sqlmock.Sqlmock, error){
	newGORMMySQLMock,
	newGORMPostgresMock,
	newSQLXPostgresMock,
	newSQLXMySQLMock,
}

const placeholderPattern = `(?:\$\d|\?)`

// rankedQueryPattern returns a regexp matching the ranked query over tUser
// ordered by name with an optional inner condition.
func rankedQueryPattern(condition string, limit int) string {
	inner := "SELECT id, name, ROW_NUMBER() OVER (ORDER BY name ASC, id ASC) AS row_rank FROM users"

	pattern := "^SELECT id, name, row_rank FROM \\(" + regexp.QuoteMeta(inner)
	if condition != "" {
		pattern += " WHERE " + condition + " = " + placeholderPattern
	}
	pattern += "\\) AS ranked WHERE row_rank > " + placeholderPattern +
		fmt.Sprintf(" ORDER BY row_rank LIMIT %d$", limit)

	return pattern
}

type tUser struct {
	ID   uuid.UUID
	Name string
}

var tUserSchema = Schema[tUser]{
	Table:    "users",
	Key:      "id",
	Identity: func(u tUser) uuid.UUID { return u.ID },
	Fields: Fields[tUser]{
		"id":   func(u *tUser) any { return &u.ID },
		"name": func(u *tUser) any { return &u.Name },
	},
}

type tFilter struct {
	Name string    `json:"name,omitempty"`
	Sort Orderings `json:"sort"`
}

func (tFilter) FilterKind() string { return "test.v1" }

func (f tFilter) Equal(other tFilter) bool {
	return f.Name == other.Name && f.Sort.Equal(other.Sort)
}

func (f tFilter) Conditions() map[string]any {
	if f.Name == "" {
		return nil
	}

	return map[string]any{"name": f.Name}
}

func (f tFilter) Orderings() Orderings { return f.Sort }

type tOtherFilter struct {
	Name string `json:"name,omitempty"`
}

func (tOtherFilter) FilterKind() string { return "other.v1" }

func (f tOtherFilter) Equal(other tOtherFilter) bool { return f == other }

func (f tOtherFilter) Conditions() map[string]any { return nil }

func (f tOtherFilter) Orderings() Orderings { return nil }

var byName = Orderings{{Column: "name", Direction: DirectionASC}}
