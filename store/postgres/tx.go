// Package postgres implements the store contracts on top of gorm and PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/Santiago26009/blog-challenge/store"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type txKey struct{}

// TxManager runs store.TxFn inside a gorm transaction carried by the context.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) ExecTx(ctx context.Context, fn store.TxFn) error {
	// Nested calls join the outer transaction.
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction in ctx, or the base handle bound to ctx.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// translate maps driver errors onto the store sentinels.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &store.DuplicateError{Constraint: pgErr.ConstraintName}
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, store.ErrInvalidReference)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Repositories are stateless wrappers over the shared handle.
type repo struct {
	db *gorm.DB
}

// New wires every gorm-backed repository into a store.Store.
func New(db *gorm.DB) *store.Store {
	r := repo{db: db}
	return &store.Store{
		Users:    &UserRepository{r},
		Profiles: &ProfileRepository{r},
		Posts:    &PostRepository{r},
		Comments: &CommentRepository{r},
		Likes:    &LikeRepository{r},
		Tokens:   &TokenRepository{r},
		Activity: &ActivityRepository{r},
		Tx:       NewTxManager(db),
	}
}

// deleteByID removes one row and reports store.ErrNotFound when nothing matched.
func (r repo) deleteByID(ctx context.Context, op string, model interface{}, id uint) error {
	res := conn(ctx, r.db).Delete(model, id)
	if res.Error != nil {
		return translate(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
