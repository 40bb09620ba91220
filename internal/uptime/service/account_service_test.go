package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/QueasyListening/uptime-api/internal/errors"
	"github.com/QueasyListening/uptime-api/internal/storage"
	"github.com/QueasyListening/uptime-api/internal/uptime/domain"
	"github.com/QueasyListening/uptime-api/internal/uptime/dto"
)

func validRegisterInput() dto.RegisterInput {
	return dto.RegisterInput{
		FirstName:    "Jane",
		LastName:     "Doe",
		Phone:        testPhone,
		Password:     "password123",
		TOSAgreement: true,
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success strips credential hash", func(t *testing.T) {
		env := newTestEnv(t)

		out, err := env.accounts.Register(ctx, validRegisterInput())
		require.NoError(t, err)

		assert.Equal(t, "Jane", out.FirstName)
		assert.Equal(t, "Doe", out.LastName)
		assert.Equal(t, testPhone, out.Phone)
		assert.True(t, out.TOSAgreement)
		assert.Empty(t, out.Checks)

		// The stored record carries a digest, never the plaintext.
		var stored domain.Account
		require.NoError(t, env.store.Read(ctx, storage.CollectionUsers, testPhone, &stored))
		assert.NotEmpty(t, stored.HashedPassword)
		assert.NotEqual(t, "password123", stored.HashedPassword)
	})

	t.Run("duplicate phone leaves original unchanged", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.accounts.Register(ctx, validRegisterInput())
		require.NoError(t, err)

		second := validRegisterInput()
		second.FirstName = "Impostor"
		_, err = env.accounts.Register(ctx, second)
		assert.ErrorIs(t, err, apierrors.ErrAccountExists)

		var stored domain.Account
		require.NoError(t, env.store.Read(ctx, storage.CollectionUsers, testPhone, &stored))
		assert.Equal(t, "Jane", stored.FirstName)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*dto.RegisterInput)
		}{
			{name: "missing firstName", mutate: func(in *dto.RegisterInput) { in.FirstName = "  " }},
			{name: "missing lastName", mutate: func(in *dto.RegisterInput) { in.LastName = "" }},
			{name: "short phone", mutate: func(in *dto.RegisterInput) { in.Phone = "12345" }},
			{name: "long phone", mutate: func(in *dto.RegisterInput) { in.Phone = "12345678901" }},
			{name: "missing password", mutate: func(in *dto.RegisterInput) { in.Password = "" }},
			{name: "tos not accepted", mutate: func(in *dto.RegisterInput) { in.TOSAgreement = false }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				env := newTestEnv(t)
				input := validRegisterInput()
				tt.mutate(&input)

				_, err := env.accounts.Register(ctx, input)
				assert.ErrorIs(t, err, apierrors.ErrValidation)
			})
		}
	})
}

func TestAccountGet(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip with valid token", func(t *testing.T) {
		env := newTestEnv(t)
		input := validRegisterInput()
		_, err := env.accounts.Register(ctx, input)
		require.NoError(t, err)
		env.seedToken(t, testTokenID, testPhone, time.Now().Add(time.Hour))

		out, err := env.accounts.Get(ctx, testPhone, testTokenID)
		require.NoError(t, err)
		assert.Equal(t, input.FirstName, out.FirstName)
		assert.Equal(t, input.LastName, out.LastName)
		assert.Equal(t, input.Phone, out.Phone)
	})

	t.Run("missing token", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedAccount(t, testPhone, "password123")

		_, err := env.accounts.Get(ctx, testPhone, "")
		assert.ErrorIs(t, err, apierrors.ErrUnauthorized)
	})

	t.Run("token bound to another account", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedAccount(t, testPhone, "password123")
		env.seedToken(t, testTokenID, "0987654321", time.Now().Add(time.Hour))

		_, err := env.accounts.Get(ctx, testPhone, testTokenID)
		assert.ErrorIs(t, err, apierrors.ErrUnauthorized)
	})

	t.Run("account gone after authorization", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedToken(t, testTokenID, testPhone, time.Now().Add(time.Hour))

		_, err := env.accounts.Get(ctx, testPhone, testTokenID)
		assert.ErrorIs(t, err, apierrors.ErrAccountNotFound)
	})
}

func TestAccountUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("applies only supplied fields", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedAccount(t, testPhone, "password123")
		env.seedToken(t, testTokenID, testPhone, time.Now().Add(time.Hour))

		err := env.accounts.Update(ctx, dto.UpdateAccountInput{Phone: testPhone, FirstName: "Janet"}, testTokenID)
		require.NoError(t, err)

		var stored domain.Account
		require.NoError(t, env.store.Read(ctx, storage.CollectionUsers, testPhone, &stored))
		assert.Equal(t, "Janet", stored.FirstName)
		assert.Equal(t, "Doe", stored.LastName)
	})

	t.Run("password change is re-hashed and usable", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedAccount(t, testPhone, "password123")
		env.seedToken(t, testTokenID, testPhone, time.Now().Add(time.Hour))

		err := env.accounts.Update(ctx, dto.UpdateAccountInput{Phone: testPhone, Password: "newpassword"}, testTokenID)
		require.NoError(t, err)

		_, err = env.tokens.Login(ctx, dto.LoginInput{Phone: testPhone, Password: "password123"})
		assert.ErrorIs(t, err, apierrors.ErrInvalidCredentials)
		_, err = env.tokens.Login(ctx, dto.LoginInput{Phone: testPhone, Password: "newpassword"})
		assert.NoError(t, err)
	})

	t.Run("no fields to update", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.accounts.Update(ctx, dto.UpdateAccountInput{Phone: testPhone}, testTokenID)
		assert.ErrorIs(t, err, apierrors.ErrValidation)
	})

	t.Run("account gone after authorization", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedToken(t, testTokenID, testPhone, time.Now().Add(time.Hour))

		err := env.accounts.Update(ctx, dto.UpdateAccountInput{Phone: testPhone, FirstName: "Janet"}, testTokenID)
		assert.ErrorIs(t, err, apierrors.ErrAccountNotFound)
	})
}

func TestAccountDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("zero checks succeeds trivially", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedAccount(t, testPhone, "password123")
		env.seedToken(t, testTokenID, testPhone, time.Now().Add(time.Hour))

		require.NoError(t, env.accounts.Delete(ctx, testPhone, testTokenID))

		var stored domain.Account
		err := env.store.Read(ctx, storage.CollectionUsers, testPhone, &stored)
		assert.ErrorIs(t, err, storage.ErrNoRecord)
	})

	t.Run("cascade deletes every owned check", func(t *testing.T) {
		env := newTestEnv(t)
		checkIDs := []string{
			"check000000000000001",
			"check000000000000002",
			"check000000000000003",
		}
		for _, id := range checkIDs {
			env.seedCheck(t, id, testPhone)
		}
		env.seedAccount(t, testPhone, "password123", checkIDs...)
		env.seedToken(t, testTokenID, testPhone, time.Now().Add(time.Hour))

		require.NoError(t, env.accounts.Delete(ctx, testPhone, testTokenID))

		for _, id := range checkIDs {
			var check domain.Check
			err := env.store.Read(ctx, storage.CollectionChecks, id, &check)
			assert.ErrorIs(t, err, storage.ErrNoRecord, "check %s must be gone", id)
		}
	})

	t.Run("partial failure reports every outcome", func(t *testing.T) {
		env := newTestEnv(t)
		real := "check000000000000001"
		ghost := "check000000000000002" // referenced by the account, no record
		env.seedCheck(t, real, testPhone)
		env.seedAccount(t, testPhone, "password123", real, ghost)
		env.seedToken(t, testTokenID, testPhone, time.Now().Add(time.Hour))

		err := env.accounts.Delete(ctx, testPhone, testTokenID)

		var cascade *apierrors.CascadeError
		require.ErrorAs(t, err, &cascade)
		assert.Equal(t, []string{real}, cascade.Deleted)
		assert.Equal(t, []string{ghost}, cascade.Failed)

		// The account record is removed even when the cascade was partial.
		var stored domain.Account
		assert.ErrorIs(t, env.store.Read(ctx, storage.CollectionUsers, testPhone, &stored), storage.ErrNoRecord)
	})

	t.Run("unauthorized without matching token", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedAccount(t, testPhone, "password123")

		assert.ErrorIs(t, env.accounts.Delete(ctx, testPhone, "nosuchtokenid1234567"), apierrors.ErrUnauthorized)
	})
}
