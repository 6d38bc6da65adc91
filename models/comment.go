package models

import "time"

type Comment struct {
	ID       uint      `json:"id" gorm:"primarykey"`
	ReviewID uint      `json:"-" gorm:"not null;index"`
	Review   *Review   `json:"-" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`
	AuthorID uint      `json:"-" gorm:"not null;index"`
	Author   User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	PubDate  time.Time `json:"pub_date" gorm:"autoCreateTime"`
}

func (c *Comment) OwnerID() uint {
	return c.AuthorID
}
