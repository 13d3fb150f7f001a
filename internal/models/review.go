package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

const MaxReviewComment = 500

func ValidReviewStatus(s string) bool {
	switch s {
	case ReviewPending, ReviewApproved, ReviewRejected:
		return true
	}
	return false
}

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                            json:"id"`
	Name      string    `gorm:"size:120;not null"                               json:"name"`
	Email     string    `gorm:"size:255;not null"                               json:"email"`
	Rating    int       `gorm:"not null;check:rating BETWEEN 1 AND 5"           json:"rating"`
	Comment   string    `gorm:"size:500;not null"                               json:"comment"`
	Status    string    `gorm:"size:20;not null;default:'pending';index"        json:"status"`
	CreatedAt time.Time `gorm:"index"                                           json:"created_at"`
	UpdatedAt time.Time `                                                       json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = ReviewPending
	}
	return nil
}

func (Review) TableName() string {
	return "reviews"
}
