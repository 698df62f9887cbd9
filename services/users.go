package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/Santiago26009/blog-challenge/domain"
	"github.com/Santiago26009/blog-challenge/models"
	"github.com/Santiago26009/blog-challenge/storage"
	"github.com/Santiago26009/blog-challenge/store"
)

const (
	emailTakenMessage    = "A user with that email already exists."
	usernameTakenMessage = "user with this username already exists."
	userNotFoundMessage  = "User not found"
)

var userFieldOrder = []string{"email", "first_name", "last_name", "username", "password"}

// UserInput is the writable user representation. Nil fields were absent.
type UserInput struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Username  *string `json:"username"`
	Password  *string `json:"password"`
}

// validate checks a signup (requireEmail), a full update or a partial update.
func (in *UserInput) validate(full, requireEmail bool) error {
	return fieldErrors(validation.ValidateStruct(in,
		validation.Field(&in.Email, presentIf(requireEmail), notBlank, maxLength(254), emailFormat()),
		validation.Field(&in.FirstName, presentIf(full), notBlank, maxLength(255)),
		validation.Field(&in.LastName, presentIf(full), notBlank, maxLength(255)),
		validation.Field(&in.Username, presentIf(full), notBlank, maxLength(255)),
		validation.Field(&in.Password, presentIf(full), notBlank, minLength(6)),
	), userFieldOrder...)
}

// apply copies present fields onto user, hashing the password.
func (in *UserInput) apply(user *models.User) error {
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		user.Email = &email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.Password = string(hash)
	}
	return nil
}

// normalizeEmail lowercases the domain part.
func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + strings.ToLower(email[at:])
}

// checkUserUnique reports taken email and username together, email first.
func checkUserUnique(ctx context.Context, users store.UserRepository, user *models.User) error {
	var emailErr, usernameErr *domain.Error
	if user.Email != nil {
		taken, err := users.EmailTaken(ctx, *user.Email, user.ID)
		if err != nil {
			return err
		}
		if taken {
			emailErr = domain.FieldConflict("email", emailTakenMessage)
		}
	}
	taken, err := users.UsernameTaken(ctx, user.Username, user.ID)
	if err != nil {
		return err
	}
	if taken {
		usernameErr = domain.FieldConflict("username", usernameTakenMessage)
	}
	if merged := domain.Merge(emailErr, usernameErr); merged != nil {
		return merged
	}
	return nil
}

// userWriteError maps a unique violation raced past checkUserUnique.
func userWriteError(err error) error {
	switch store.ConstraintOf(err) {
	case models.UserEmailIndex:
		return domain.FieldConflict("email", emailTakenMessage)
	case models.UserUsernameIndex:
		return domain.FieldConflict("username", usernameTakenMessage)
	}
	return err
}

type UserService struct {
	users    store.UserRepository
	profiles store.ProfileRepository
	tx       store.TxManager
	images   storage.ImageStore
	logger   *slog.Logger
}

func NewUserService(st *store.Store, images storage.ImageStore, logger *slog.Logger) *UserService {
	return &UserService{users: st.Users, profiles: st.Profiles, tx: st.Tx, images: images, logger: logger}
}

// UsernameAvailable reports whether no account uses username yet.
func (s *UserService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	taken, err := s.users.UsernameTaken(ctx, username, 0)
	return !taken, err
}

// EmailAvailable compares the address the way signup stores it.
func (s *UserService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	taken, err := s.users.EmailTaken(ctx, normalizeEmail(email), 0)
	return !taken, err
}

func (s *UserService) Get(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, userNotFoundMessage)
	}
	return user, nil
}

// Update applies a full (PUT) or partial (PATCH) change to the caller's account.
func (s *UserService) Update(ctx context.Context, userID uint, in UserInput, partial bool) (*models.User, error) {
	if err := in.validate(!partial, false); err != nil {
		return nil, err
	}
	var user *models.User
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		u, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return notFoundAs(err, userNotFoundMessage)
		}
		if err := in.apply(u); err != nil {
			return err
		}
		if err := checkUserUnique(ctx, s.users, u); err != nil {
			return err
		}
		if err := s.users.Update(ctx, u); err != nil {
			return userWriteError(err)
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user updated", "user_id", userID, "partial", partial)
	return user, nil
}

// Delete removes the account; everything the user owns goes with it.
func (s *UserService) Delete(ctx context.Context, userID uint) error {
	var imageRef string
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		profile, err := s.profiles.GetByUserID(ctx, userID)
		switch {
		case err == nil:
			imageRef = profile.ProfileImage
		case !errors.Is(err, store.ErrNotFound):
			return err
		}
		return notFoundAs(s.users.Delete(ctx, userID), userNotFoundMessage)
	})
	if err != nil {
		return err
	}
	removeImage(ctx, s.images, s.logger, userID, imageRef)
	s.logger.Info("user deleted", "user_id", userID)
	return nil
}

// removeImage deletes an object uploaded for userID after its row is gone;
// references to anything else are left alone. Failures are only logged.
func removeImage(ctx context.Context, images storage.ImageStore, logger *slog.Logger, userID uint, ref string) {
	if !storage.OwnedBy(ref, userID) {
		return
	}
	if err := images.Delete(ctx, ref); err != nil {
		logger.Warn("failed to delete image", "key", ref, "error", err)
	}
}
