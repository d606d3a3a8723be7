package billing

import (
	"context"
	"errors"
	"fmt"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"log/slog"
	"net/http"
)

type StripeProvider struct {
	api *client.API
}

func NewStripeProvider(secretKey string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{api: api}
}

func (p *StripeProvider) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	}
	params.Context = ctx

	customer, err := p.api.Customers.New(params)
	if err != nil {
		return "", classify("create customer", err)
	}
	return customer.ID, nil
}

func (p *StripeProvider) UpdateCustomerAddress(ctx context.Context, customerID string, address Address) error {
	params := &stripe.CustomerParams{
		Address: &stripe.AddressParams{
			Line1:      stripe.String(address.Line1),
			City:       stripe.String(address.City),
			State:      stripe.String(address.State),
			PostalCode: stripe.String(address.PostalCode),
			Country:    stripe.String(address.Country),
		},
	}
	params.Context = ctx

	if _, err := p.api.Customers.Update(customerID, params); err != nil {
		return classify("update customer address", err)
	}
	return nil
}

// 4xx(除429)視為永久錯誤，其餘交給重試
func classify(operation string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		status := stripeErr.HTTPStatusCode
		if status >= 400 && status < 500 && status != http.StatusTooManyRequests {
			return fmt.Errorf("%s: %w: %v", operation, ErrPermanent, err)
		}
	}
	return fmt.Errorf("%s: %w", operation, err)
}

// LogProvider 未設定金鑰時使用，只記錄呼叫
type LogProvider struct {
	logger *slog.Logger
}

func NewLogProvider(logger *slog.Logger) *LogProvider {
	return &LogProvider{logger: logger}
}

func (p *LogProvider) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	p.logger.InfoContext(ctx, "billing disabled, skip create customer", "email", email)
	return "", ErrDisabled
}

func (p *LogProvider) UpdateCustomerAddress(ctx context.Context, customerID string, address Address) error {
	p.logger.InfoContext(ctx, "billing disabled, skip address mirror", "customer_id", customerID)
	return fmt.Errorf("%w: %w", ErrPermanent, ErrDisabled)
}
