package billing

import (
	"Storefront/models"
	"context"
	"errors"
	"strings"
)

var (
	// ErrDisabled 未設定金流金鑰時回傳
	ErrDisabled = errors.New("billing provider disabled")
	// ErrPermanent 重試也不會成功的錯誤，例如參數錯誤
	ErrPermanent = errors.New("permanent billing error")
)

type Address struct {
	Line1      string `json:"line1"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Provider 外部金流服務的客戶資料，實作需可替換成測試用的假物件
type Provider interface {
	CreateCustomer(ctx context.Context, email, name string) (string, error)
	UpdateCustomerAddress(ctx context.Context, customerID string, address Address) error
}

// AddressFromShipping 金流服務要求ISO國碼，非兩碼國家名稱改用預設國碼
func AddressFromShipping(address models.ShippingAddress, defaultCountry string) Address {
	country := strings.TrimSpace(address.Country)
	if len(country) == 2 {
		country = strings.ToUpper(country)
	} else {
		country = defaultCountry
	}

	return Address{
		Line1:      address.AddressLine1,
		City:       address.City,
		State:      address.State,
		PostalCode: address.ZipCode,
		Country:    country,
	}
}

// CustomerName 與註冊時相同的「姓 名」格式
func CustomerName(firstName, lastName string) string {
	return strings.TrimSpace(lastName + " " + firstName)
}
