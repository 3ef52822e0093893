package models

import "time"

type File struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	BucketName string    `json:"bucket_name" gorm:"not null"`
	Path       string    `json:"path" gorm:"not null"`
	SizeInByte int64     `json:"size_in_byte"`
	Mimetype   string    `json:"mimetype"`
	CreatedAt  time.Time `json:"created_at"`
}
