package models

// Product represents a product in the catalogue.
type Product struct {
	ID      int     `json:"id" gorm:"primaryKey"`
	Title   string  `json:"title" gorm:"type:varchar(50);not null"`
	Details *string `json:"details" gorm:"type:varchar(1000)"`
}

// TableName returns the table name for Product model.
func (Product) TableName() string {
	return "products"
}

// Clone returns a copy of the product that shares no memory with p.
func (p Product) Clone() Product {
	if p.Details != nil {
		details := *p.Details
		p.Details = &details
	}
	return p
}
