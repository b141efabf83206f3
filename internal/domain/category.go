package domain

// Category Model
type Category struct {
	ID     uint   `gorm:"primaryKey" json:"id"`         // Primary key
	UserID uint   `gorm:"index;not null" json:"-"`      // Foreign key to the owning User
	Name   string `gorm:"size:191;not null" json:"name"` // Category name
	Type   string `gorm:"size:20;not null" json:"type"`  // Category type: income or expense
}

// defaultCategories is the seed set every new user starts with
var defaultCategories = []Category{
	{Name: "Salary", Type: "income"},
	{Name: "Freelance", Type: "income"},
	{Name: "Investments", Type: "income"},
	{Name: "Food", Type: "expense"},
	{Name: "Transportation", Type: "expense"},
	{Name: "Housing", Type: "expense"},
	{Name: "Utilities", Type: "expense"},
	{Name: "Entertainment", Type: "expense"},
	{Name: "Shopping", Type: "expense"},
	{Name: "Healthcare", Type: "expense"},
}

// DefaultCategoriesFor returns the seed categories owned by the given user
func DefaultCategoriesFor(userID uint) []Category {
	cats := make([]Category, len(defaultCategories))
	copy(cats, defaultCategories)
	for i := range cats {
		cats[i].UserID = userID // Assign ownership to the new user
	}
	return cats
}
