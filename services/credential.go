package services

import (
	"Storefront/apperr"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt只接受72位元組以內的密碼
const maxPasswordBytes = 72

// CredentialService 密碼單向雜湊與驗證
type CredentialService struct {
	cost int
}

func NewCredentialService(cost int) *CredentialService {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &CredentialService{cost: cost}
}

// Hash 每次產生新的salt
func (s *CredentialService) Hash(plaintext string) (string, error) {
	if len(plaintext) > maxPasswordBytes {
		return "", apperr.New(apperr.KindInvalidPayload, "密碼長度超過72位元組")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify bcrypt以固定時間比較
func (s *CredentialService) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// RotateIfProvided 沒有提供新密碼或新密碼與原密碼相同時沿用原Hash，
// 只有真的變更密碼時才產生新的salt
func (s *CredentialService) RotateIfProvided(existingHash, supplied string) (string, error) {
	if supplied == "" {
		return existingHash, nil
	}

	if s.Verify(supplied, existingHash) {
		return existingHash, nil
	}

	return s.Hash(supplied)
}
