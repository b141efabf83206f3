package domain

// Transaction Model
type Transaction struct {
	ID          uint    `gorm:"primaryKey" json:"id"`    // Primary key
	UserID      uint    `gorm:"index;not null" json:"-"` // Foreign key to the owning User
	CategoryID  *uint   `json:"category_id"`             // Foreign key to Category, nullable
	Amount      float64 `json:"amount"`                  // Transaction amount
	Description string  `json:"description"`             // Free-form description
	Date        string  `gorm:"size:32" json:"date"`     // Date as sent by the client, not format-checked
	Type        string  `gorm:"size:20" json:"type"`     // income or expense, stored independently of the category's type
}
