package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/Santiago26009/blog-challenge/models"
	"github.com/Santiago26009/blog-challenge/store"
)

func TestTranslate(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, translate("op", nil))
	})

	t.Run("record not found", func(t *testing.T) {
		err := translate("get post", fmt.Errorf("wrapped: %w", gorm.ErrRecordNotFound))
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unique violation keeps constraint name", func(t *testing.T) {
		err := translate("create like", &pgconn.PgError{Code: "23505", ConstraintName: models.LikeUserPostIndex})
		assert.ErrorIs(t, err, store.ErrDuplicate)
		assert.Equal(t, models.LikeUserPostIndex, store.ConstraintOf(err))
	})

	t.Run("foreign key violation", func(t *testing.T) {
		err := translate("create comment", &pgconn.PgError{Code: "23503"})
		assert.ErrorIs(t, err, store.ErrInvalidReference)
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := translate("list posts", cause)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "list posts")
		assert.Empty(t, store.ConstraintOf(err))
	})
}
