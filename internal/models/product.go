package models

import "time"

// Product is a catalog listing. CreatorEmail ties it to the account that
// manages it; there is no foreign key, mirroring the application linkage.
type Product struct {
	ID           string
	Title        string
	Description  string
	CreatorEmail string
	Images       []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
