package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"quizroom_backend/internal/model"
	"quizroom_backend/internal/repository"
	"quizroom_backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
	Storage  StorageProvider
}

func NewUserService(userRepo *repository.UserRepository, storage StorageProvider) *UserService {
	return &UserService{UserRepo: userRepo, Storage: storage}
}

type UpdateProfileInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (s *UserService) GetByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile 改用户名/邮箱，换新值前先查重
func (s *UserService) UpdateProfile(userID uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if username := strings.TrimSpace(input.Username); username != "" && username != user.Username {
		if _, err := s.UserRepo.FindByUsername(username); err == nil {
			return nil, util.ErrUsernameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Username = username
	}

	if email := strings.ToLower(strings.TrimSpace(input.Email)); email != "" && email != user.Email {
		if _, err := s.UserRepo.FindByEmail(email); err == nil {
			return nil, util.ErrEmailRegistered
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = email
	}

	if err := s.UserRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

// UploadAvatar 存储头像并更新用户资料
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, fileHeader *multipart.FileHeader) (*model.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if fileHeader.Size > util.MaxAvatarSizeByte {
		return nil, errors.New("avatar file exceeds the 5MB limit")
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, util.MimeImage) {
		return nil, errors.New("avatar must be an image file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ext := filepath.Ext(fileHeader.Filename)
	filename := fmt.Sprintf("avatars/%s%s", uuid.New().String(), ext)

	url, err := s.Storage.Upload(ctx, filename, file, fileHeader.Size, contentType)
	if err != nil {
		return nil, err
	}

	user.ProfilePicture = url
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) RemovePicture(userID uint) (*model.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.ProfilePicture = ""
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) TouchLastSeen(userID uint) error {
	return s.UserRepo.UpdateLastSeen(userID)
}
