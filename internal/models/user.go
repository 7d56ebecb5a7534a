package models

import "time"

// UserModel is a learner account.
type UserModel struct {
	Base
	Username      string     `json:"username" gorm:"size:64;uniqueIndex;not null"`
	Name          string     `json:"name"     gorm:"size:128"`
	Password      string     `json:"-"        gorm:"size:128;not null"`
	Mail          string     `json:"mail"     gorm:"size:255"`
	Introduce     string     `json:"introduce" gorm:"type:text"`
	LastLoginTime *time.Time `json:"last_login_time"`
	LastLoginIP   string     `json:"last_login_ip" gorm:"size:64"`
}

func (UserModel) TableName() string { return "users" }
