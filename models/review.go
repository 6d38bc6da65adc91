package models

import "time"

type Review struct {
	ID       uint      `json:"id" gorm:"primarykey"`
	TitleID  uint      `json:"-" gorm:"not null;uniqueIndex:idx_review_title_author"`
	Title    *Title    `json:"-" gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE"`
	AuthorID uint      `json:"-" gorm:"not null;uniqueIndex:idx_review_title_author"`
	Author   User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	Score    int       `json:"score" gorm:"not null"`
	PubDate  time.Time `json:"pub_date" gorm:"autoCreateTime;index"`
}

// OwnerID returns the id of the user who wrote the review.
func (r *Review) OwnerID() uint {
	return r.AuthorID
}
