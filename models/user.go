package models

// User is created on first successful Google sign-in and never mutated after.
// ID is the Google subject claim.
type User struct {
	ID      string `gorm:"primaryKey" json:"id"`
	Email   string `gorm:"index" json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}
