package entity

import "time"

// Supplier proveedor del catálogo. Phone es único; Email también cuando está presente.
type Supplier struct {
	ID            int64
	Name          string
	ContactPerson string
	Phone         string
	Email         *string
	Address       string
	CreatedAt     time.Time
}
