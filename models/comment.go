package models

import "time"

type Comment struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Author    *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
	ParentID  *uint     `json:"parent_id" gorm:"index"`
	Replies   []Comment `json:"replies,omitempty" gorm:"foreignKey:ParentID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c Comment) OwnerID() uint { return c.AuthorID }
