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

// CheckService is the check registry. It owns the checks collection and
// maintains the back-reference from each account to its check ids, which is
// the one cross-entity write path in the system.
type CheckService struct {
	store     storage.Store
	tokens    *TokenService
	maxChecks int
	keys      *KeyedMutex
}

func NewCheckService(store storage.Store, tokens *TokenService, maxChecks int, keys *KeyedMutex) *CheckService {
	return &CheckService{
		store:     store,
		tokens:    tokens,
		maxChecks: maxChecks,
		keys:      keys,
	}
}

// Create persists a new check for the account the token is bound to. The
// owner is always derived from the token, never supplied by the caller. The
// quota check and the append to the owner's check set run under the owner's
// key lock.
func (s *CheckService) Create(ctx context.Context, input dto.CreateCheckInput, tokenID string) (*domain.Check, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var token domain.Token
	if err := s.store.Read(ctx, storage.CollectionTokens, tokenID, &token); err != nil {
		return nil, apierrors.ErrUnauthorized
	}
	if !token.Active(time.Now()) {
		return nil, apierrors.ErrUnauthorized
	}
	phone := token.Phone

	s.keys.Lock(phone)
	defer s.keys.Unlock(phone)

	var account domain.Account
	if err := s.store.Read(ctx, storage.CollectionUsers, phone, &account); err != nil {
		return nil, apierrors.ErrUnauthorized
	}
	if len(account.Checks) >= s.maxChecks {
		return nil, apierrors.ErrQuotaExceeded
	}

	id, err := codec.RandomID(domain.IDLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate check id: %w", err)
	}

	check := domain.Check{
		ID:             id,
		UserPhone:      phone,
		Protocol:       input.Protocol,
		URL:            input.URL,
		Method:         input.Method,
		SuccessCodes:   input.SuccessCodes,
		TimeoutSeconds: input.TimeoutSeconds,
	}
	if err := s.store.Create(ctx, storage.CollectionChecks, id, check); err != nil {
		return nil, fmt.Errorf("failed to create check: %w", err)
	}

	account.Checks = append(account.Checks, id)
	if err := s.store.Update(ctx, storage.CollectionUsers, phone, account); err != nil {
		// The check exists but is not linked to its owner. Detected, not
		// rolled back.
		return nil, fmt.Errorf("check %s created but owner %s not updated: %w", id, phone, apierrors.ErrInconsistent)
	}

	return &check, nil
}

// Get returns the check by id. The token is verified against the check's
// stored owner phone, so authorization is transitive through the check.
func (s *CheckService) Get(ctx context.Context, id, tokenID string) (*domain.Check, error) {
	if len(id) != domain.IDLength {
		return nil, apierrors.Validationf("id must be exactly %d characters", domain.IDLength)
	}

	var check domain.Check
	if err := s.store.Read(ctx, storage.CollectionChecks, id, &check); err != nil {
		if errors.Is(err, storage.ErrNoRecord) {
			return nil, apierrors.ErrCheckNotFound
		}
		return nil, err
	}

	if !s.tokens.Verify(ctx, tokenID, check.UserPhone) {
		return nil, apierrors.ErrUnauthorized
	}

	return &check, nil
}

// Update applies the supplied fields to the check. Ownership is verified the
// same way as Get.
func (s *CheckService) Update(ctx context.Context, input dto.UpdateCheckInput, tokenID string) error {
	if err := input.Validate(); err != nil {
		return err
	}

	var check domain.Check
	if err := s.store.Read(ctx, storage.CollectionChecks, input.ID, &check); err != nil {
		if errors.Is(err, storage.ErrNoRecord) {
			return apierrors.ErrCheckNotFound
		}
		return err
	}
	if !s.tokens.Verify(ctx, tokenID, check.UserPhone) {
		return apierrors.ErrUnauthorized
	}

	if input.Protocol != nil {
		check.Protocol = *input.Protocol
	}
	if input.URL != nil {
		check.URL = *input.URL
	}
	if input.Method != nil {
		check.Method = *input.Method
	}
	if input.SuccessCodes != nil {
		check.SuccessCodes = input.SuccessCodes
	}
	if input.TimeoutSeconds != nil {
		check.TimeoutSeconds = *input.TimeoutSeconds
	}

	if err := s.store.Update(ctx, storage.CollectionChecks, input.ID, check); err != nil {
		return fmt.Errorf("failed to update check: %w", err)
	}

	return nil
}

// Delete removes the check and its id from the owner's check set, under the
// owner's key lock. An id missing from the owner's set at that point is a
// detected anomaly, not silently ignored.
func (s *CheckService) Delete(ctx context.Context, id, tokenID string) error {
	if len(id) != domain.IDLength {
		return apierrors.Validationf("id must be exactly %d characters", domain.IDLength)
	}

	var check domain.Check
	if err := s.store.Read(ctx, storage.CollectionChecks, id, &check); err != nil {
		if errors.Is(err, storage.ErrNoRecord) {
			return apierrors.ErrCheckNotFound
		}
		return err
	}
	if !s.tokens.Verify(ctx, tokenID, check.UserPhone) {
		return apierrors.ErrUnauthorized
	}

	s.keys.Lock(check.UserPhone)
	defer s.keys.Unlock(check.UserPhone)

	if err := s.store.Delete(ctx, storage.CollectionChecks, id); err != nil {
		if errors.Is(err, storage.ErrNoRecord) {
			return apierrors.ErrCheckNotFound
		}
		return fmt.Errorf("failed to delete check: %w", err)
	}

	var account domain.Account
	if err := s.store.Read(ctx, storage.CollectionUsers, check.UserPhone, &account); err != nil {
		return fmt.Errorf("check %s deleted but owner %s not loaded: %w", id, check.UserPhone, apierrors.ErrInconsistent)
	}

	idx := -1
	for i, checkID := range account.Checks {
		if checkID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("check %s missing from owner %s: %w", id, check.UserPhone, apierrors.ErrInconsistent)
	}

	account.Checks = append(account.Checks[:idx], account.Checks[idx+1:]...)
	if err := s.store.Update(ctx, storage.CollectionUsers, check.UserPhone, account); err != nil {
		return fmt.Errorf("check %s deleted but owner %s not updated: %w", id, check.UserPhone, apierrors.ErrInconsistent)
	}

	return nil
}
