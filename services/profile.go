package services

import (
	"Storefront/apperr"
	"Storefront/billing"
	"Storefront/models"
	"Storefront/repository"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const enqueueTimeout = 2 * time.Second

// ProfileUpdate nil代表不變更，空字串則覆蓋為空字串
// Email與Password為空字串時同樣不變更
type ProfileUpdate struct {
	Email      string
	Password   string
	FirstName  *string
	LastName   *string
	Phone      *string
	Address    *string
	City       *string
	State      *string
	PostalCode *string
	Country    *string
}

type MirrorDispatcher interface {
	Enqueue(ctx context.Context, job billing.MirrorJob) error
}

// ProfileMutator 本地資料以事務嚴格更新，金流服務的地址只做盡力同步
type ProfileMutator struct {
	users          repository.UserRepository
	creds          *CredentialService
	mirror         MirrorDispatcher
	defaultCountry string
	logger         *slog.Logger
}

func NewProfileMutator(
	users repository.UserRepository,
	creds *CredentialService,
	mirror MirrorDispatcher,
	defaultCountry string,
	logger *slog.Logger,
) *ProfileMutator {
	return &ProfileMutator{
		users:          users,
		creds:          creds,
		mirror:         mirror,
		defaultCountry: defaultCountry,
		logger:         logger.With("module", "services.profile"),
	}
}

func (m *ProfileMutator) Update(ctx context.Context, userID uint, in ProfileUpdate) (*models.User, error) {
	user, err := m.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if email := strings.TrimSpace(in.Email); email != "" && email != user.Email {
		taken, err := m.users.EmailTaken(ctx, email, user.ID)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, apperr.New(apperr.KindConflict, "信箱已被使用")
		}
		user.Email = email
	}

	hash, err := m.creds.RotateIfProvided(user.Password, in.Password)
	if err != nil {
		return nil, fmt.Errorf("rotate password: %w", err)
	}
	user.Password = hash

	applyProfile(user, in)

	if err := m.users.UpdateProfile(ctx, user); err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			return nil, apperr.Wrap(apperr.KindConflict, "信箱已被使用", err)
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	m.dispatchMirror(ctx, user)
	return user, nil
}

func applyProfile(user *models.User, in ProfileUpdate) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	set(&user.FirstName, in.FirstName)
	set(&user.LastName, in.LastName)
	set(&user.Phone, in.Phone)

	address := &user.ShippingAddress
	set(&address.AddressLine1, in.Address)
	set(&address.City, in.City)
	set(&address.ZipCode, in.PostalCode)
	set(&address.Country, in.Country)
	//沒有另外提供州/地區時沿用國家欄位
	if in.State != nil {
		address.State = *in.State
	} else {
		set(&address.State, in.Country)
	}
}

// dispatchMirror 只負責排入背景佇列，結果不影響這次請求
func (m *ProfileMutator) dispatchMirror(ctx context.Context, user *models.User) {
	if !user.HasBillingCustomer() {
		return
	}

	job := billing.NewMirrorJob(user.ID, *user.BillingCustomerID, billing.AddressFromShipping(user.ShippingAddress, m.defaultCountry))

	enqueueCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), enqueueTimeout)
	defer cancel()

	if err := m.mirror.Enqueue(enqueueCtx, job); err != nil {
		m.logger.WarnContext(ctx, "enqueue address mirror failed",
			"outcome", apperr.KindUpstreamFailure,
			"user_id", user.ID,
			"job_id", job.ID,
			"error", err,
		)
		return
	}

	m.logger.DebugContext(ctx, "address mirror enqueued", "user_id", user.ID, "job_id", job.ID)
}
