package services

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/kisinia/yosa/internal/app/models/dto"
	"github.com/kisinia/yosa/internal/app/repositories"
	"github.com/kisinia/yosa/internal/pkg/apperrors"
	"github.com/kisinia/yosa/internal/pkg/filestorage"
	"github.com/kisinia/yosa/internal/pkg/logger"
)

// IUserService defines the interface for profile operations
type IUserService interface {
	GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	UpdateAvatar(ctx context.Context, userID int64, file *multipart.FileHeader) (*dto.ProfileResponse, error)
}

// UserService handles profile reads and updates
type UserService struct {
	userRepo         repositories.IUserRepository
	registrationRepo repositories.IRegistrationRepository
	fileStorage      filestorage.FileStorage
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repositories.IUserRepository,
	registrationRepo repositories.IRegistrationRepository,
	fileStorage filestorage.FileStorage,
) *UserService {
	return &UserService{
		userRepo:         userRepo,
		registrationRepo: registrationRepo,
		fileStorage:      fileStorage,
	}
}

// GetProfile retrieves the caller's profile with registration statistics
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	return s.buildProfile(ctx, userID)
}

// UpdateProfile applies the editable profile fields. The email must stay
// unique across accounts.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != user.Email {
		exists, err := s.userRepo.EmailExists(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.ErrEmailAlreadyExists
		}
	}

	err = s.userRepo.UpdateProfile(ctx, userID, req.FirstName, req.LastName, req.Email, req.Phone, req.Bio)
	if err != nil {
		return nil, err
	}

	return s.buildProfile(ctx, userID)
}

var allowedAvatarExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UpdateAvatar stores the uploaded image and replaces the previous avatar
func (s *UserService) UpdateAvatar(ctx context.Context, userID int64, file *multipart.FileHeader) (*dto.ProfileResponse, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedAvatarExtensions[ext] {
		return nil, apperrors.NewBadRequestError("avatar must be an image file (jpg, jpeg, png, gif or webp)")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	avatarURL, err := s.fileStorage.SaveFileWithPath(file, "avatars")
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateAvatarURL(ctx, userID, &avatarURL); err != nil {
		return nil, err
	}

	if user.AvatarURL != nil {
		if err := s.fileStorage.DeleteFile(*user.AvatarURL); err != nil {
			logger.Warn().Err(err).Str("path", *user.AvatarURL).Msg("Failed to remove old avatar")
		}
	}

	return s.buildProfile(ctx, userID)
}

func (s *UserService) buildProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	count, err := s.registrationRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileResponse{
		UserResponse: dto.UserResponse{
			ID:         user.ID,
			Username:   user.Username,
			Email:      user.Email,
			FirstName:  user.FirstName,
			LastName:   user.LastName,
			Phone:      user.Phone,
			Bio:        user.Bio,
			AvatarURL:  user.AvatarURL,
			Role:       string(user.Role),
			IsVerified: user.IsVerified,
			CreatedAt:  user.CreatedAt,
		},
		RegistrationsCount: count,
	}, nil
}
