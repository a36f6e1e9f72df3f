package model

import "time"

// User, Writer and Admin live in separate tables. Usernames and emails
// are unique across the user and writer tables jointly; the account
// repository enforces that, not the schema.

type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type Writer struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	Username       string    `gorm:"uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	Phone          string    `json:"phone"`
	CompletedTasks int       `gorm:"not null;default:0" json:"completed_tasks"`
	Earnings       float64   `gorm:"not null;default:0" json:"earnings"`
	CreatedAt      time.Time `json:"created_at"`
}

type Admin struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
