package models

import "gorm.io/gorm"

// 密碼欄位不可序列化，任何回傳User的API都不會帶出Hash
type User struct {
	gorm.Model
	Email             string          `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Password          string          `gorm:"not null" json:"-"`
	FirstName         string          `json:"firstName"`
	LastName          string          `json:"lastName"`
	Phone             string          `json:"phone"`
	Role              Role            `gorm:"size:32;not null" json:"role"`
	BillingCustomerID *string         `gorm:"column:billing_customer_id;size:64" json:"billingCustomerID"`
	ShippingAddress   ShippingAddress `gorm:"constraint:OnDelete:CASCADE" json:"shippingAddress"`
	Cart              *Cart           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Orders            []Order         `json:"orders,omitempty"`
}

func (u *User) HasBillingCustomer() bool {
	return u.BillingCustomerID != nil && *u.BillingCustomerID != ""
}
