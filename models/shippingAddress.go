package models

import "gorm.io/gorm"

const DefaultAddressLabel = "Home"

type ShippingAddress struct {
	gorm.Model
	UserID       uint   `gorm:"uniqueIndex;not null" json:"userID"`
	FullName     string `json:"fullName"`
	AddressLine1 string `gorm:"column:address_line1" json:"addressLine1"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	Country      string `json:"country"`
}
