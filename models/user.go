package models

import (
	"errors"
	"time"

	"bitbucket.org/gfmis/budget_backend/utils"
	"gorm.io/gorm"
)

type User struct {
	ID           int        `gorm:"primary_key" json:"id"`
	Name         string     `gorm:"size:255;not null" json:"name"`
	Email        string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Username     string     `gorm:"size:255;not null;uniqueIndex" json:"username"`
	Password     string     `gorm:"size:255;not null" json:"-"`
	Role         Role       `gorm:"type:enum('admin','approver','reviewer','data_entry');default:'data_entry'" json:"role"`
	Status       UserStatus `gorm:"type:enum('active','inactive','suspended');default:'active'" json:"status"`
	Organization string     `gorm:"size:255;not null;index" json:"organization"`
	Designation  string     `gorm:"size:255;not null" json:"designation"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeSave hashes the password whenever it changes. Stored values always
// carry the bcrypt prefix, so a plain-text value is detected by its absence.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Password == "" || len(u.Password) >= 4 && u.Password[:4] == "$2a$" {
		return nil
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(password string) error {
	return utils.ComparePassword(u.Password, password)
}

func GetUserById(db *gorm.DB, id int) (*User, error) {
	var user User
	err := db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByUsername(db *gorm.DB, username string) (*User, error) {
	var user User
	err := db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
