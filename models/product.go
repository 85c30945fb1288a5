package models

import "time"

// Product is a catalog item rendered on the storefront.
type Product struct {
	ID          string    `bson:"id" json:"id"`                                   // Unique product identifier (UUID)
	Name        string    `bson:"name" json:"name"`                               // Display name
	Description string    `bson:"description" json:"description"`                 // Short description for the catalog page
	Price       float64   `bson:"price" json:"price"`                             // Unit price
	Currency    string    `bson:"currency" json:"currency"`                       // ISO currency code
	Category    string    `bson:"category" json:"category"`                       // e.g., "bread", "pastry", "cake"
	ImageURL    string    `bson:"image_url,omitempty" json:"image_url,omitempty"` // Hosted image location
	Active      bool      `bson:"active" json:"active"`                           // Inactive products are hidden from the storefront
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
