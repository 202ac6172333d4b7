package users

import (
	"github.com/google/uuid"

	"github.com/Alp4ka/rankpager"
)

// TableName is the relation users are stored in.
const TableName = "users"

// User is the row shape served by the users endpoint.
type User struct {
	ID      uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name    string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Surname string    `gorm:"type:varchar(255);not null;index" json:"surname"`
	Email   string    `gorm:"type:varchar(320);uniqueIndex" json:"email"`
}

// TableName - implements gorm schema.Tabler.
func (User) TableName() string {
	return TableName
}

// Schema whitelists the columns of User.
var Schema = rankpager.Schema[User]{
	Table:    TableName,
	Key:      "id",
	Identity: func(u User) uuid.UUID { return u.ID },
	Fields: rankpager.Fields[User]{
		"id":      func(u *User) any { return &u.ID },
		"name":    func(u *User) any { return &u.Name },
		"surname": func(u *User) any { return &u.Surname },
		"email":   func(u *User) any { return &u.Email },
	},
}
