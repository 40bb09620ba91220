package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/QueasyListening/uptime-api/internal/storage"
	"github.com/QueasyListening/uptime-api/internal/uptime/codec"
	"github.com/QueasyListening/uptime-api/internal/uptime/domain"
)

const (
	testSecret    = "thisIsASecret"
	testExpiryMin = 60
	testMaxChecks = 5
)

type testEnv struct {
	store    *storage.MemoryStore
	tokens   *TokenService
	accounts *AccountService
	checks   *CheckService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := storage.NewMemoryStore()
	keys := NewKeyedMutex()
	tokens := NewTokenService(store, testSecret, testExpiryMin)

	return &testEnv{
		store:    store,
		tokens:   tokens,
		accounts: NewAccountService(store, tokens, testSecret, keys),
		checks:   NewCheckService(store, tokens, testMaxChecks, keys),
	}
}

func (e *testEnv) seedAccount(t *testing.T, phone, password string, checks ...string) {
	t.Helper()

	digest, err := codec.Hash(testSecret, password)
	require.NoError(t, err)

	if checks == nil {
		checks = []string{}
	}
	account := domain.Account{
		FirstName:      "Jane",
		LastName:       "Doe",
		Phone:          phone,
		HashedPassword: digest,
		TOSAgreement:   true,
		Checks:         checks,
	}
	require.NoError(t, e.store.Create(context.Background(), storage.CollectionUsers, phone, account))
}

func (e *testEnv) seedToken(t *testing.T, id, phone string, expires time.Time) {
	t.Helper()

	token := domain.Token{ID: id, Phone: phone, Expires: expires}
	require.NoError(t, e.store.Create(context.Background(), storage.CollectionTokens, id, token))
}

func (e *testEnv) seedCheck(t *testing.T, id, phone string) {
	t.Helper()

	check := domain.Check{
		ID:             id,
		UserPhone:      phone,
		Protocol:       "http",
		URL:            "example.com",
		Method:         "get",
		SuccessCodes:   []int{200},
		TimeoutSeconds: 3,
	}
	require.NoError(t, e.store.Create(context.Background(), storage.CollectionChecks, id, check))
}
