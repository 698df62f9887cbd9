package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/Santiago26009/blog-challenge/domain"
	"github.com/Santiago26009/blog-challenge/models"
	"github.com/Santiago26009/blog-challenge/store"
	"github.com/Santiago26009/blog-challenge/utils"
)

const (
	invalidCredentialsMessage = "Invalid credentials, try again"
	invalidTokenMessage       = "Token is invalid or expired"
	invalidAccessMessage      = "Given token not valid for any token type"

	LogoutMessage    = "Logout"
	LogoutAllMessage = "OK, goodbye, all refresh tokens blacklisted"
)

// dummyHash is compared against for unknown usernames so both failure paths cost one bcrypt check.
var dummyHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	return hash
})

type LoginInput struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

type LoginResult struct {
	Username string          `json:"username"`
	Tokens   utils.TokenPair `json:"tokens"`
}

type LogoutInput struct {
	RefreshToken *string      `json:"refresh_token"`
	All          utils.Truthy `json:"all"`
}

type RefreshInput struct {
	Refresh *string `json:"refresh"`
}

type AuthService struct {
	users  store.UserRepository
	tokens store.TokenRepository
	tx     store.TxManager
	issuer *utils.TokenIssuer
	logger *slog.Logger
}

func NewAuthService(st *store.Store, issuer *utils.TokenIssuer, logger *slog.Logger) *AuthService {
	return &AuthService{users: st.Users, tokens: st.Tokens, tx: st.Tx, issuer: issuer, logger: logger}
}

// Signup creates an account. Email and username collisions are reported together.
func (s *AuthService) Signup(ctx context.Context, in UserInput) (*models.User, error) {
	if err := in.validate(true, true); err != nil {
		return nil, err
	}
	user := &models.User{}
	if err := in.apply(user); err != nil {
		return nil, err
	}
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if err := checkUserUnique(ctx, s.users, user); err != nil {
			return err
		}
		return userWriteError(s.users.Create(ctx, user))
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user signed up", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login verifies credentials and stores a new refresh record for the issued pair.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Username, present(), notBlank, maxLength(17)),
		validation.Field(&in.Password, present(), notBlank, minLength(6), maxLength(68)),
	)
	if err := fieldErrors(err, "username", "password"); err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, *in.Username)
	if errors.Is(err, store.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(*in.Password))
		return nil, domain.Authentication(invalidCredentialsMessage)
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(*in.Password)) != nil {
		return nil, domain.Authentication(invalidCredentialsMessage)
	}

	pair, err := s.issuer.IssuePair(user.ID)
	if err != nil {
		return nil, err
	}
	err = s.tx.ExecTx(ctx, func(ctx context.Context) error {
		return s.tokens.Create(ctx, &models.RefreshToken{
			UserID:    user.ID,
			JTI:       pair.RefreshID,
			ExpiresAt: pair.RefreshExpiresAt,
		})
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user logged in", "user_id", user.ID)
	return &LoginResult{Username: user.Username, Tokens: pair.Tokens}, nil
}

// Logout revokes one refresh record of the caller, or all of them.
func (s *AuthService) Logout(ctx context.Context, userID uint, in LogoutInput) (string, error) {
	if in.All {
		var n int64
		err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
			var err error
			n, err = s.tokens.RevokeAllForUser(ctx, userID)
			return err
		})
		if err != nil {
			return "", err
		}
		s.logger.Info("all refresh tokens revoked", "user_id", userID, "count", n)
		return LogoutAllMessage, nil
	}
	if in.RefreshToken == nil {
		return "", domain.FieldValidation("refresh_token", "required", "This field is required.")
	}

	invalid := domain.FieldValidation("refresh_token", "token_not_valid", invalidTokenMessage)
	claims, err := s.issuer.Parse(*in.RefreshToken, utils.RefreshTokenType)
	if err != nil || claims.UserID != userID {
		return "", invalid
	}
	err = s.tx.ExecTx(ctx, func(ctx context.Context) error {
		record, err := s.tokens.GetByJTI(ctx, claims.ID)
		if errors.Is(err, store.ErrNotFound) {
			return invalid
		}
		if err != nil {
			return err
		}
		if record.UserID != userID || !record.Active(s.issuer.Now()) {
			return invalid
		}
		return s.tokens.Revoke(ctx, record.JTI)
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("refresh token revoked", "user_id", userID)
	return LogoutMessage, nil
}

// Refresh issues a new access token bound to the same refresh record.
func (s *AuthService) Refresh(ctx context.Context, in RefreshInput) (string, error) {
	if in.Refresh == nil {
		return "", domain.FieldValidation("refresh", "required", "This field is required.")
	}
	claims, err := s.issuer.Parse(*in.Refresh, utils.RefreshTokenType)
	if err != nil {
		return "", domain.Authentication(invalidTokenMessage)
	}
	if _, err := s.activeRecord(ctx, claims.UserID, claims.ID); err != nil {
		return "", err
	}
	return s.issuer.IssueAccess(claims.UserID, claims.ID)
}

// Authenticate resolves an access token to the caller. The refresh record it
// was issued with must still be active and the user must still exist.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*utils.UserClaims, error) {
	claims, err := s.issuer.Parse(accessToken, utils.AccessTokenType)
	if err != nil {
		return nil, domain.Authentication(invalidAccessMessage)
	}
	if _, err := s.activeRecord(ctx, claims.UserID, claims.RefreshID); err != nil {
		if domain.As(err) != nil {
			return nil, domain.Authentication(invalidAccessMessage)
		}
		return nil, err
	}
	return &utils.UserClaims{UserID: claims.UserID, RefreshID: claims.RefreshID}, nil
}

func (s *AuthService) activeRecord(ctx context.Context, userID uint, jti string) (*models.RefreshToken, error) {
	record, err := s.tokens.GetByJTI(ctx, jti)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.Authentication(invalidTokenMessage)
	}
	if err != nil {
		return nil, err
	}
	if record.UserID != userID || !record.Active(s.issuer.Now()) {
		return nil, domain.Authentication(invalidTokenMessage)
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.Authentication("User not found")
		}
		return nil, err
	}
	return record, nil
}
