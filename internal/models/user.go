package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

func ValidRole(r string) bool {
	return r == RoleUser || r == RoleAdmin
}

type Address struct {
	Street  string `gorm:"size:255;not null;default:''" json:"street"`
	City    string `gorm:"size:100;not null;default:''" json:"city"`
	State   string `gorm:"size:100;not null;default:''" json:"state"`
	ZipCode string `gorm:"size:20;not null;default:''"  json:"zip_code"`
	Country string `gorm:"size:100;not null;default:''" json:"country"`
}

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"                        json:"id"`
	Name         string     `gorm:"size:120;not null"                           json:"name"`
	Email        string     `gorm:"size:255;not null;uniqueIndex"               json:"email"`
	PasswordHash string     `gorm:"not null"                                    json:"-"`
	Phone        string     `gorm:"size:30;not null;default:''"                 json:"phone"`
	Address      Address    `gorm:"embedded;embeddedPrefix:address_"            json:"address"`
	Role         string     `gorm:"size:20;not null;default:'user'"             json:"role"`
	IsVerified   bool       `gorm:"not null;default:false"                      json:"is_verified"`
	OTPHash      string     `gorm:"column:otp_hash;not null;default:''"         json:"-"`
	OTPExpiresAt *time.Time `gorm:"column:otp_expires_at"                       json:"-"`
	CreatedAt    time.Time  `                                                   json:"created_at"`
	UpdatedAt    time.Time  `                                                   json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

func (User) TableName() string {
	return "users"
}
