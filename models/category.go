package models

import "time"

// Category is hierarchical; a nil ParentID marks a root.
type Category struct {
	ID        uint       `json:"id" gorm:"primarykey"`
	Name      string     `json:"name" gorm:"uniqueIndex;not null"`
	ParentID  *uint      `json:"parent_id" gorm:"index"`
	Parent    *Category  `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Children  []Category `json:"children,omitempty" gorm:"foreignKey:ParentID"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
