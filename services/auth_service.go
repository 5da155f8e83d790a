package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/greentable/site-backend/models"
	"github.com/greentable/site-backend/repositories"
)

type LoginInput struct {
	Email    string
	Password string
}

// AuthService authenticates admin panel editors. Account provisioning happens
// outside this application; only login is exposed.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*models.Editor, error)
}

type authService struct {
	editorRepo repositories.EditorRepository
}

func NewAuthService(editorRepo repositories.EditorRepository) AuthService {
	return &authService{editorRepo: editorRepo}
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.Editor, error) {
	editor, err := s.editorRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrEditorNotFound) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find editor by email: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(editor.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	editor.PasswordHash = ""
	return editor, nil
}
