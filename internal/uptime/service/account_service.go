package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apierrors "github.com/QueasyListening/uptime-api/internal/errors"
	"github.com/QueasyListening/uptime-api/internal/storage"
	"github.com/QueasyListening/uptime-api/internal/uptime/codec"
	"github.com/QueasyListening/uptime-api/internal/uptime/domain"
	"github.com/QueasyListening/uptime-api/internal/uptime/dto"
)

// AccountService is the account registry. It owns the users collection and
// is the only component allowed to delete an account, which cascades to
// every check the account owns.
type AccountService struct {
	store         storage.Store
	tokens        *TokenService
	hashingSecret string
	keys          *KeyedMutex
}

func NewAccountService(store storage.Store, tokens *TokenService, hashingSecret string, keys *KeyedMutex) *AccountService {
	return &AccountService{
		store:         store,
		tokens:        tokens,
		hashingSecret: hashingSecret,
		keys:          keys,
	}
}

// Register validates the input and persists a new account with a hashed
// credential and an empty check set. The phone number must be unused.
func (s *AccountService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AccountOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	digest, err := codec.Hash(s.hashingSecret, input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := domain.Account{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Phone:          input.Phone,
		HashedPassword: digest,
		TOSAgreement:   true,
		Checks:         []string{},
	}
	if err := s.store.Create(ctx, storage.CollectionUsers, account.Phone, account); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, apierrors.ErrAccountExists
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return dto.NewAccountOutput(&account), nil
}

// Get returns the account view for phone. The caller's token must verify
// against that same phone.
func (s *AccountService) Get(ctx context.Context, phone, tokenID string) (*dto.AccountOutput, error) {
	if len(phone) != domain.PhoneLength {
		return nil, apierrors.Validationf("phone must be exactly %d characters", domain.PhoneLength)
	}
	if !s.tokens.Verify(ctx, tokenID, phone) {
		return nil, apierrors.ErrUnauthorized
	}

	var account domain.Account
	if err := s.store.Read(ctx, storage.CollectionUsers, phone, &account); err != nil {
		if errors.Is(err, storage.ErrNoRecord) {
			return nil, apierrors.ErrAccountNotFound
		}
		return nil, err
	}

	return dto.NewAccountOutput(&account), nil
}

// Update applies the supplied fields to the account. A new password is
// re-hashed before storage. Runs under the account's key lock so it cannot
// race a check mutation on the same record.
func (s *AccountService) Update(ctx context.Context, input dto.UpdateAccountInput, tokenID string) error {
	if err := input.Validate(); err != nil {
		return err
	}
	if !s.tokens.Verify(ctx, tokenID, input.Phone) {
		return apierrors.ErrUnauthorized
	}

	s.keys.Lock(input.Phone)
	defer s.keys.Unlock(input.Phone)

	var account domain.Account
	if err := s.store.Read(ctx, storage.CollectionUsers, input.Phone, &account); err != nil {
		if errors.Is(err, storage.ErrNoRecord) {
			return apierrors.ErrAccountNotFound
		}
		return err
	}

	if input.FirstName != "" {
		account.FirstName = input.FirstName
	}
	if input.LastName != "" {
		account.LastName = input.LastName
	}
	if input.Password != "" {
		digest, err := codec.Hash(s.hashingSecret, input.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		account.HashedPassword = digest
	}

	if err := s.store.Update(ctx, storage.CollectionUsers, input.Phone, account); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	return nil
}

// Delete removes the account and cascade-deletes every check it owns. Every
// deletion is attempted before the outcome is decided; if any failed, the
// returned CascadeError reports which ids were removed and which were not.
// The account record itself is deleted either way.
func (s *AccountService) Delete(ctx context.Context, phone, tokenID string) error {
	if len(phone) != domain.PhoneLength {
		return apierrors.Validationf("phone must be exactly %d characters", domain.PhoneLength)
	}
	if !s.tokens.Verify(ctx, tokenID, phone) {
		return apierrors.ErrUnauthorized
	}

	s.keys.Lock(phone)
	defer s.keys.Unlock(phone)

	var account domain.Account
	if err := s.store.Read(ctx, storage.CollectionUsers, phone, &account); err != nil {
		if errors.Is(err, storage.ErrNoRecord) {
			return apierrors.ErrAccountNotFound
		}
		return err
	}

	var deleted, failed []string
	for _, checkID := range account.Checks {
		if err := s.store.Delete(ctx, storage.CollectionChecks, checkID); err != nil {
			slog.Warn("cascade delete failed for check", "check", checkID, "phone", phone, "error", err)
			failed = append(failed, checkID)
			continue
		}
		deleted = append(deleted, checkID)
	}

	if err := s.store.Delete(ctx, storage.CollectionUsers, phone); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if len(failed) > 0 {
		return &apierrors.CascadeError{Deleted: deleted, Failed: failed}
	}

	return nil
}
