package services

import (
	"Storefront/apperr"
	"Storefront/billing"
	"Storefront/models"
	"context"
	"errors"
	"sync"
	"time"
)

type fakeUsers struct {
	mu      sync.Mutex
	nextID  uint
	byID    map[uint]models.User
	findErr error
	saveErr error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{nextID: 1, byID: map[uint]models.User{}}
}

func (f *fakeUsers) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == user.Email {
			return apperr.ErrConflict
		}
	}
	user.ID = f.nextID
	f.nextID++
	user.ShippingAddress.UserID = user.ID
	f.byID[user.ID] = *user
	return nil
}

func (f *fakeUsers) FindByID(ctx context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeUsers) FindProfile(ctx context.Context, id uint) (*models.User, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeUsers) EmailTaken(ctx context.Context, email string, exceptUserID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email && u.ID != exceptUserID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) UpdateProfile(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.byID[user.ID] = *user
	return nil
}

func (f *fakeUsers) SetBillingCustomerID(ctx context.Context, userID uint, customerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.byID[userID]
	u.BillingCustomerID = &customerID
	f.byID[userID] = u
	return nil
}

type fakeCarts struct {
	byOwner    map[uint]models.Cart
	replaceErr error
	replaced   int
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{byOwner: map[uint]models.Cart{}}
}

func (f *fakeCarts) Create(ctx context.Context, cart *models.Cart) error {
	if _, ok := f.byOwner[cart.UserID]; ok {
		return apperr.ErrConflict
	}
	cart.ID = uint(len(f.byOwner) + 100)
	f.byOwner[cart.UserID] = *cart
	return nil
}

func (f *fakeCarts) FindByOwner(ctx context.Context, userID uint) (*models.Cart, error) {
	cart, ok := f.byOwner[userID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &cart, nil
}

func (f *fakeCarts) ReplaceProducts(ctx context.Context, cartID uint, products string) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	for owner, cart := range f.byOwner {
		if cart.ID == cartID {
			cart.Products = products
			f.byOwner[owner] = cart
			f.replaced++
			return nil
		}
	}
	return apperr.ErrNotFound
}

type fakeCatalog struct {
	products map[uint]models.Product
	err      error
	calls    [][]uint
}

func newFakeCatalog(products ...models.Product) *fakeCatalog {
	c := &fakeCatalog{products: map[uint]models.Product{}}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (f *fakeCatalog) FindMany(ctx context.Context, ids []uint) ([]models.Product, error) {
	f.calls = append(f.calls, ids)
	if f.err != nil {
		return nil, f.err
	}
	found := []models.Product{}
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			found = append(found, p)
		}
	}
	return found, nil
}

func product(id uint, name string, price uint) models.Product {
	p := models.Product{Name: name, Price: price, Stock: 5}
	p.ID = id
	return p
}

type fakeSigner struct {
	err error
}

func (f *fakeSigner) GenerateToken(userID uint) (string, time.Time, error) {
	if f.err != nil {
		return "", time.Time{}, f.err
	}
	return "token-for-user", time.Now().Add(time.Hour), nil
}

type fakeBilling struct {
	mu        sync.Mutex
	createErr error
	updateErr error
	release   chan struct{}
	updates   []billing.Address
}

func (f *fakeBilling) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	return "cus_" + name, nil
}

func (f *fakeBilling) UpdateCustomerAddress(ctx context.Context, customerID string, address billing.Address) error {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, address)
	return f.updateErr
}

func (f *fakeBilling) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updates)
}

type recordingDispatcher struct {
	jobs []billing.MirrorJob
	err  error
}

func (r *recordingDispatcher) Enqueue(ctx context.Context, job billing.MirrorJob) error {
	if r.err != nil {
		return r.err
	}
	r.jobs = append(r.jobs, job)
	return nil
}

var errBoom = errors.New("boom")

func newUserWithEmail(email string) *models.User {
	return &models.User{Email: email, Password: "hash", Role: models.RoleStandard}
}
