package models

import "time"

type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	ScreenTime   float64   `json:"screen_time" db:"screen_time"`
	LastChecked  time.Time `json:"last_checked" db:"last_checked"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
