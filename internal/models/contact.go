package models

import "time"

// Contact is a "liked it?" form submission, optionally tied to a product.
type Contact struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	Message     string
	ProductID   string
	ProductName string
	SubmittedAt time.Time
}
