package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	apierrors "github.com/QueasyListening/uptime-api/internal/errors"
	"github.com/QueasyListening/uptime-api/internal/storage"
	"github.com/QueasyListening/uptime-api/internal/uptime/codec"
	"github.com/QueasyListening/uptime-api/internal/uptime/domain"
	"github.com/QueasyListening/uptime-api/internal/uptime/dto"
)

// TokenService is the token authority: it issues, reads, extends, revokes
// and verifies the short-lived tokens that gate every other resource
// operation.
type TokenService struct {
	store         storage.Store
	hashingSecret string
	expiry        time.Duration
}

func NewTokenService(store storage.Store, hashingSecret string, expiryMinutes int) *TokenService {
	return &TokenService{
		store:         store,
		hashingSecret: hashingSecret,
		expiry:        time.Duration(expiryMinutes) * time.Minute,
	}
}

// Login checks the credentials against the stored digest and, on a match,
// issues a fresh token expiring one configured interval from now.
func (s *TokenService) Login(ctx context.Context, input dto.LoginInput) (*domain.Token, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var account domain.Account
	if err := s.store.Read(ctx, storage.CollectionUsers, input.Phone, &account); err != nil {
		if errors.Is(err, storage.ErrNoRecord) {
			return nil, apierrors.ErrAccountNotFound
		}
		return nil, err
	}

	digest, err := codec.Hash(s.hashingSecret, input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if digest != account.HashedPassword {
		return nil, apierrors.ErrInvalidCredentials
	}

	id, err := codec.RandomID(domain.IDLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token id: %w", err)
	}

	token := domain.Token{
		ID:      id,
		Phone:   account.Phone,
		Expires: time.Now().Add(s.expiry),
	}
	if err := s.store.Create(ctx, storage.CollectionTokens, id, token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	return &token, nil
}

// Get returns the token record by id. It performs no ownership check:
// possession of the exact id is the only requirement, matching login
// read-back behavior.
func (s *TokenService) Get(ctx context.Context, id string) (*domain.Token, error) {
	if len(id) != domain.IDLength {
		return nil, apierrors.Validationf("id must be exactly %d characters", domain.IDLength)
	}

	var token domain.Token
	if err := s.store.Read(ctx, storage.CollectionTokens, id, &token); err != nil {
		if errors.Is(err, storage.ErrNoRecord) {
			return nil, apierrors.ErrTokenNotFound
		}
		return nil, err
	}

	return &token, nil
}

// Verify reports whether the token names phone and is still unexpired. It is
// the single authorization gate for every resource operation; it never
// errors and has no side effects.
func (s *TokenService) Verify(ctx context.Context, id, phone string) bool {
	var token domain.Token
	if err := s.store.Read(ctx, storage.CollectionTokens, id, &token); err != nil {
		return false
	}

	return token.Phone == phone && token.Active(time.Now())
}

// Extend resets the expiry of a still-active token to one configured
// interval from now. Expired tokens cannot be revived.
func (s *TokenService) Extend(ctx context.Context, input dto.ExtendInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	var token domain.Token
	if err := s.store.Read(ctx, storage.CollectionTokens, input.ID, &token); err != nil {
		if errors.Is(err, storage.ErrNoRecord) {
			return apierrors.ErrTokenNotFound
		}
		return err
	}
	if !token.Active(time.Now()) {
		return apierrors.ErrTokenExpired
	}

	token.Expires = time.Now().Add(s.expiry)
	if err := s.store.Update(ctx, storage.CollectionTokens, input.ID, token); err != nil {
		return fmt.Errorf("failed to update token expiration: %w", err)
	}

	return nil
}

// Revoke deletes the token unconditionally. Knowledge of the exact id is the
// only required proof.
func (s *TokenService) Revoke(ctx context.Context, id string) error {
	if len(id) != domain.IDLength {
		return apierrors.Validationf("id must be exactly %d characters", domain.IDLength)
	}

	if err := s.store.Delete(ctx, storage.CollectionTokens, id); err != nil {
		if errors.Is(err, storage.ErrNoRecord) {
			return apierrors.ErrTokenNotFound
		}
		return fmt.Errorf("failed to delete token: %w", err)
	}

	return nil
}
