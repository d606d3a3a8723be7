package services

import (
	"Storefront/apperr"
	"Storefront/billing"
	"Storefront/models"
	"Storefront/repository"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type TokenSigner interface {
	GenerateToken(userID uint) (string, time.Time, error)
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// SessionIssuer 註冊帳號與登入發放Token
type SessionIssuer struct {
	users         repository.UserRepository
	creds         *CredentialService
	signer        TokenSigner
	billing       billing.Provider
	createTimeout time.Duration
	logger        *slog.Logger
	// 查無帳號時仍做一次比對，讓兩種失敗的回應時間一致
	dummyHash string
}

func NewSessionIssuer(
	users repository.UserRepository,
	creds *CredentialService,
	signer TokenSigner,
	provider billing.Provider,
	createTimeout time.Duration,
	logger *slog.Logger,
) *SessionIssuer {
	dummyHash, _ := creds.Hash("storefront-dummy-password")
	return &SessionIssuer{
		users:         users,
		creds:         creds,
		signer:        signer,
		billing:       provider,
		createTimeout: createTimeout,
		logger:        logger.With("module", "services.session"),
		dummyHash:     dummyHash,
	}
}

// Issue 信箱不存在與密碼錯誤回傳相同錯誤，不洩漏帳號是否存在
func (s *SessionIssuer) Issue(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			s.creds.Verify(password, s.dummyHash)
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if !s.creds.Verify(password, user.Password) {
		return nil, apperr.ErrInvalidCredentials
	}

	token, expiresAt, err := s.signer.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &Session{Token: token, ExpiresAt: expiresAt}, nil
}

// Register 建立使用者與空白地址後，再嘗試在金流服務建立客戶
// 金流服務失敗不影響註冊，客戶ID維持空值
func (s *SessionIssuer) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := strings.TrimSpace(in.Email)

	taken, err := s.users.EmailTaken(ctx, email, 0)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, apperr.New(apperr.KindConflict, "信箱已被使用")
	}

	hashed, err := s.creds.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:     email,
		Password:  hashed,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      models.RoleStandard,
		ShippingAddress: models.ShippingAddress{
			FullName: models.DefaultAddressLabel,
		},
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			return nil, apperr.Wrap(apperr.KindConflict, "信箱已被使用", err)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.attachBillingCustomer(ctx, user)
	return user, nil
}

func (s *SessionIssuer) attachBillingCustomer(ctx context.Context, user *models.User) {
	createCtx, cancel := context.WithTimeout(ctx, s.createTimeout)
	defer cancel()

	customerID, err := s.billing.CreateCustomer(createCtx, user.Email, billing.CustomerName(user.FirstName, user.LastName))
	if err != nil {
		if errors.Is(err, billing.ErrDisabled) {
			return
		}
		s.logger.WarnContext(ctx, "create billing customer failed",
			"outcome", apperr.KindUpstreamFailure,
			"user_id", user.ID,
			"error", err,
		)
		return
	}

	if err := s.users.SetBillingCustomerID(ctx, user.ID, customerID); err != nil {
		s.logger.ErrorContext(ctx, "save billing customer id failed",
			"user_id", user.ID,
			"customer_id", customerID,
			"error", err,
		)
		return
	}
	user.BillingCustomerID = &customerID
}
