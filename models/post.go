package models

import (
	"time"

	"gorm.io/datatypes"
)

type Post struct {
	ID               uint           `json:"id" gorm:"primarykey"`
	Name             string         `json:"name" gorm:"not null"`
	Slug             string         `json:"slug" gorm:"uniqueIndex;not null"`
	Summary          string         `json:"summary" gorm:"type:text;not null"`
	Body             datatypes.JSON `json:"body" gorm:"not null"`
	CoverImageFileID *uint          `json:"cover_image_file_id"`
	CoverImageFile   *File          `json:"cover_image_file,omitempty" gorm:"foreignKey:CoverImageFileID"`
	AuthorID         uint           `json:"author_id" gorm:"not null;index"`
	Author           *User          `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	IsPublished      bool           `json:"is_published" gorm:"default:false"`
	Categories       []Category     `json:"categories" gorm:"many2many:post_categories;"`
	Tags             []Tag          `json:"tags" gorm:"many2many:post_tags;"`
	Comments         []Comment      `json:"comments,omitempty" gorm:"foreignKey:PostID"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (p Post) OwnerID() uint   { return p.AuthorID }
func (p Post) Published() bool { return p.IsPublished }
