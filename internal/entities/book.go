package entities

import (
	"strconv"
	"time"
)

type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Author    string    `gorm:"size:255;not null" json:"author"`
	Genre     string    `gorm:"size:100" json:"genre,omitempty"`
	Year      *int      `json:"year,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// YearString returns the year as entered in forms, or "" when unset.
func (b Book) YearString() string {
	if b.Year == nil {
		return ""
	}
	return strconv.Itoa(*b.Year)
}
