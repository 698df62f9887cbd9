package services

import (
	"context"
	"errors"

	"github.com/Santiago26009/blog-challenge/domain"
	"github.com/Santiago26009/blog-challenge/store"
)

// OwnershipMessages are the details reported when the target is missing or
// belongs to someone else.
type OwnershipMessages struct {
	NotFound  string
	Forbidden string
}

var (
	postUpdateMessages    = OwnershipMessages{NotFound: "No post found", Forbidden: "You cannot update someone else post"}
	postDeleteMessages    = OwnershipMessages{NotFound: "No post found", Forbidden: "You cannot delete someone else post"}
	commentUpdateMessages = OwnershipMessages{NotFound: "No comment found", Forbidden: "You cannot update someone else comment"}
	commentDeleteMessages = OwnershipMessages{NotFound: "No comment found", Forbidden: "You cannot delete someone else comment"}
	likeDeleteMessages    = OwnershipMessages{NotFound: "No like found", Forbidden: "You cannot delete someone else like"}
)

// OwnedMutation runs one transaction that loads the target, requires actorID
// to own it, then applies mutate. Not found is checked before ownership, and
// ownership before anything mutate validates.
func OwnedMutation[T any](
	ctx context.Context,
	tx store.TxManager,
	actorID uint,
	load func(ctx context.Context) (*T, error),
	owner func(*T) uint,
	msgs OwnershipMessages,
	mutate func(ctx context.Context, target *T) error,
) (*T, error) {
	var result *T
	err := tx.ExecTx(ctx, func(ctx context.Context) error {
		target, err := load(ctx)
		if errors.Is(err, store.ErrNotFound) {
			return domain.NotFound(msgs.NotFound)
		}
		if err != nil {
			return err
		}
		if owner(target) != actorID {
			return domain.Authorization(msgs.Forbidden)
		}
		if err := mutate(ctx, target); err != nil {
			return err
		}
		result = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// notFoundAs maps store.ErrNotFound to a NotFound with detail.
func notFoundAs(err error, detail string) error {
	if errors.Is(err, store.ErrNotFound) {
		return domain.NotFound(detail)
	}
	return err
}
