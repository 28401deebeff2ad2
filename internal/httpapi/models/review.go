package models

import "time"

// Review is one user's opinion of a film, series or anime. Username is
// nullable: rows written before accounts existed have no owner.
type Review struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title      string    `json:"title" gorm:"not null"`
	Year       *int      `json:"year"`
	Genre      *string   `json:"genre"`
	Kind       string    `json:"kind" gorm:"not null"`
	Rating     float64   `json:"rating" gorm:"not null;check:rating >= 0 AND rating <= 10"`
	Username   *string   `json:"username" gorm:"index"`
	Review     *string   `json:"review"`
	ReviewDate time.Time `json:"review_date" gorm:"autoCreateTime"`
}

func (Review) TableName() string {
	return "reviews"
}
