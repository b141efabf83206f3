package domain

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey"`                    // Primary key
	Username string `gorm:"uniqueIndex;size:191;not null"` // Unique username
	Email    string `gorm:"uniqueIndex;size:191;not null"` // Unique email
	Password string `gorm:"not null"`                      // Hashed password
}
