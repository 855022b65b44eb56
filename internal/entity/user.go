package entity

import (
	"time"
)

type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	ProfileImage string    `json:"profile_image"`
	Coins        int64     `gorm:"not null;default:0" json:"coins"`
	TotalLike    int64     `gorm:"not null;default:0" json:"total_like"`
	IsOnline     bool      `gorm:"not null;default:false" json:"is_online"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
