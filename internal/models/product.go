package models

// Product represents a product in the catalog. Slug is the external lookup key.
type Product struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Slug  string `json:"slug" gorm:"uniqueIndex;size:50;not null"`
	Name  string `json:"name" gorm:"size:100;not null"`
	Price int    `json:"price" gorm:"not null"`
}
