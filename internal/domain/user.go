package domain

import "time"

// User is the authenticated principal and the owner of recipes,
// favorites, shopping carts and subscriptions.
type User struct {
	ID           int64     `gorm:"column:id;primaryKey" json:"id"`
	Username     string    `gorm:"column:username;size:150;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"column:email;size:254;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	FirstName    string    `gorm:"column:first_name;size:150" json:"first_name"`
	LastName     string    `gorm:"column:last_name;size:150" json:"last_name"`
	Avatar       *string   `gorm:"column:avatar" json:"avatar,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"-"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"-"`
}

func (User) TableName() string { return "users" }
