package models

import (
	"time"
)

type User struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	IsAdmin   bool      `json:"is_admin" gorm:"default:false"`
	Posts     []Post    `json:"posts,omitempty" gorm:"foreignKey:AuthorID"`
	Comments  []Comment `json:"comments,omitempty" gorm:"foreignKey:AuthorID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Sanitize drops the password hash before the user leaves the service layer.
func (u *User) Sanitize() *User {
	if u != nil {
		u.Password = ""
	}
	return u
}
