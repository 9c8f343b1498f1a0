//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"lastbite/internal/domain/user"
	"lastbite/internal/pkg/errs"
	"lastbite/internal/pkg/jwt"
	"lastbite/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthUseCase(t *testing.T) {
	svc := jwt.NewService("test-secret", time.Hour, nil)
	issuer := usecase.NewTokenIssuer(svc)
	validator := usecase.NewTokenValidator(svc)

	t.Run("issued token validates", func(t *testing.T) {
		id := uuid.New()
		token, err := issuer.IssueToken(id, "consumer")
		require.NoError(t, err)

		gotID, role, err := validator.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, id, gotID)
		assert.Equal(t, user.RoleConsumer, role)
	})

	t.Run("nil user id gets a fresh one", func(t *testing.T) {
		token, err := issuer.IssueToken(uuid.Nil, "producer")
		require.NoError(t, err)

		gotID, _, err := validator.ValidateToken(token)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, gotID)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := issuer.IssueToken(uuid.New(), "admin")
		assert.True(t, errs.Is(err, usecase.ErrTokenGeneration))
	})

	t.Run("tampered token", func(t *testing.T) {
		_, _, err := validator.ValidateToken("a.b.c")
		assert.True(t, errs.Is(err, usecase.ErrTokenValidation))
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
