package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Santiago26009/blog-challenge/domain"
	"github.com/Santiago26009/blog-challenge/models"
	"github.com/Santiago26009/blog-challenge/storage"
	"github.com/Santiago26009/blog-challenge/store"
)

const (
	profileExistsMessage  = "Profile exists"
	noProfileMessage      = "No profile associated"
	profileImageAttr      = "profile_image"
	invalidImageMessage   = "Upload a valid image. Allowed types are jpeg, png, webp and gif."
	imageTooLargeTemplate = "Ensure the image is no larger than %d bytes."
)

// ImageUpload is an image file received with the request.
type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ProfileInput carries either an image reference or an upload in ProfileImage/Upload.
type ProfileInput struct {
	Biography    *string      `json:"biography"`
	ProfileImage *string      `json:"profile_image"`
	Upload       *ImageUpload `json:"-"`
}

type ProfileService struct {
	profiles     store.ProfileRepository
	tx           store.TxManager
	images       storage.ImageStore
	maxImageSize int64
	logger       *slog.Logger
}

func NewProfileService(st *store.Store, images storage.ImageStore, maxImageSize int64, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		profiles:     st.Profiles,
		tx:           st.Tx,
		images:       images,
		maxImageSize: maxImageSize,
		logger:       logger,
	}
}

// ImageURL renders a stored reference for clients.
func (s *ProfileService) ImageURL(ref string) string {
	return storage.ResolveURL(s.images, ref)
}

func (s *ProfileService) Get(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.Validation(noProfileMessage)
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) validate(in *ProfileInput, full bool) error {
	imageRules := []validation.Rule{notBlank}
	if in.Upload == nil {
		imageRules = append(imageRules, presentIf(full))
	}
	err := fieldErrors(validation.ValidateStruct(in,
		validation.Field(&in.Biography, maxLength(255)),
		validation.Field(&in.ProfileImage, imageRules...),
	), "biography", profileImageAttr)
	if err != nil {
		return err
	}
	if in.Upload != nil {
		if !storage.IsAllowedImage(in.Upload.ContentType) {
			return domain.FieldValidation(profileImageAttr, "invalid_image", invalidImageMessage)
		}
		if in.Upload.Size > s.maxImageSize {
			return domain.FieldValidation(profileImageAttr, "max_size", fmt.Sprintf(imageTooLargeTemplate, s.maxImageSize))
		}
	}
	return nil
}

// storeImage uploads in.Upload, if any, and returns the reference to save.
func (s *ProfileService) storeImage(ctx context.Context, userID uint, in *ProfileInput) (string, error) {
	if in.Upload == nil {
		if in.ProfileImage == nil {
			return "", nil
		}
		return *in.ProfileImage, nil
	}
	key := storage.NewImageKey(userID, in.Upload.FileName, in.Upload.ContentType)
	if err := s.images.Put(ctx, key, in.Upload.ContentType, in.Upload.Body, in.Upload.Size); err != nil {
		return "", fmt.Errorf("store profile image: %w", err)
	}
	return key, nil
}

// Create attaches the caller's single profile.
func (s *ProfileService) Create(ctx context.Context, userID uint, in ProfileInput) (*models.Profile, error) {
	if _, err := s.profiles.GetByUserID(ctx, userID); err == nil {
		return nil, domain.Conflict(profileExistsMessage)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if err := s.validate(&in, true); err != nil {
		return nil, err
	}
	ref, err := s.storeImage(ctx, userID, &in)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{UserID: userID, ProfileImage: ref}
	if in.Biography != nil {
		profile.Biography = *in.Biography
	}
	err = s.tx.ExecTx(ctx, func(ctx context.Context) error {
		err := s.profiles.Create(ctx, profile)
		if store.ConstraintOf(err) == models.ProfileUserIndex {
			return domain.Conflict(profileExistsMessage)
		}
		return err
	})
	if err != nil {
		if in.Upload != nil {
			removeImage(ctx, s.images, s.logger, userID, ref)
		}
		return nil, err
	}
	s.logger.Info("profile created", "user_id", userID)
	return profile, nil
}

// Update replaces (full) or merges (partial) the caller's profile. A replaced
// stored image is removed after the row is saved.
func (s *ProfileService) Update(ctx context.Context, userID uint, in ProfileInput, partial bool) (*models.Profile, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.validate(&in, !partial); err != nil {
		return nil, err
	}
	ref, err := s.storeImage(ctx, userID, &in)
	if err != nil {
		return nil, err
	}

	var profile *models.Profile
	var previous string
	err = s.tx.ExecTx(ctx, func(ctx context.Context) error {
		p, err := s.Get(ctx, userID)
		if err != nil {
			return err
		}
		if in.Biography != nil {
			p.Biography = *in.Biography
		}
		if ref != "" && ref != p.ProfileImage {
			previous = p.ProfileImage
			p.ProfileImage = ref
		}
		if err := s.profiles.Update(ctx, p); err != nil {
			return err
		}
		profile = p
		return nil
	})
	if err != nil {
		if in.Upload != nil {
			removeImage(ctx, s.images, s.logger, userID, ref)
		}
		return nil, err
	}
	removeImage(ctx, s.images, s.logger, userID, previous)
	s.logger.Info("profile updated", "user_id", userID, "partial", partial)
	return profile, nil
}

func (s *ProfileService) Delete(ctx context.Context, userID uint) error {
	var ref string
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		p, err := s.Get(ctx, userID)
		if err != nil {
			return err
		}
		ref = p.ProfileImage
		return s.profiles.DeleteByUserID(ctx, userID)
	})
	if err != nil {
		return err
	}
	removeImage(ctx, s.images, s.logger, userID, ref)
	s.logger.Info("profile deleted", "user_id", userID)
	return nil
}
