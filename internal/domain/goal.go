package domain

import "time"

// Goal Model
type Goal struct {
	ID        uint      `gorm:"primaryKey" json:"id"`          // Primary key
	UserID    uint      `gorm:"index;not null" json:"-"`       // Foreign key to the owning User
	Name      string    `gorm:"size:191;not null" json:"name"` // Goal name
	Target    float64   `json:"target"`                        // Target amount
	Type      string    `gorm:"size:20" json:"type"`           // Goal type: expense cap or saving target
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"` // Timestamp of creation
}
