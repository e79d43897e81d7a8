package models

// Contact represents a person in the address book, keyed by its numeric ID.
type Contact struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	FName string `json:"fname" gorm:"column:fname;size:100;not null"`
	LName string `json:"lname" gorm:"column:lname;size:100;not null"`
}
