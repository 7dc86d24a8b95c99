package upload

import (
	"context"
	"errors"
	"fmt"

	"brightline/internal/domain"
	"brightline/internal/pkg/logger"
	fileupload "brightline/internal/pkg/upload"
	"brightline/internal/repository"
	"brightline/internal/storage"
)

type Service struct {
	users UserRepository
	files FileRemover
}

func NewService(users UserRepository, files FileRemover) *Service {
	return &Service{users: users, files: files}
}

// SetAvatar points the user at the newly stored file and removes the file it
// replaces. The new file is removed again when the user cannot be updated.
func (s *Service) SetAvatar(ctx context.Context, userID int64, file fileupload.StoredFile) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.discard(ctx, file)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	previous := u.Avatar
	u.Avatar = file.URL
	if err := s.users.Update(ctx, u); err != nil {
		s.discard(ctx, file)
		return nil, fmt.Errorf("update avatar: %w", err)
	}

	if category, name, ok := fileupload.Locate(previous); ok && category == fileupload.Avatars {
		if _, err := s.files.Delete(ctx, category, name); err != nil {
			logger.WarnContext(ctx, "failed to remove previous avatar", "user_id", userID, "file", name, "error", err)
		}
	}
	return u, nil
}

// Delete reports whether a file was removed. A missing file is not an error.
func (s *Service) Delete(ctx context.Context, category, filename string) (bool, error) {
	c, ok := fileupload.ParseCategory(category)
	if !ok {
		return false, ErrInvalidCategory
	}
	removed, err := s.files.Delete(ctx, c, filename)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidKey) {
			return false, ErrInvalidFilename
		}
		return false, fmt.Errorf("delete file: %w", err)
	}
	return removed, nil
}

func (s *Service) discard(ctx context.Context, file fileupload.StoredFile) {
	if _, err := s.files.Delete(ctx, file.Category, file.Filename); err != nil {
		logger.WarnContext(ctx, "failed to discard upload", "file", file.Filename, "error", err)
	}
}
