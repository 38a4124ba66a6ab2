// Package session keeps the signed-in user of a dashboard session in the
// durable key-value store, so the session survives reloads and restarts.
package session

import (
	"context"
	"errors"
	"fmt"

	"food-delivery-dashboard/apierror"
	"food-delivery-dashboard/management"
	"food-delivery-dashboard/models"
	"food-delivery-dashboard/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrNoSession = errors.New("no user logged in")

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignupRequest struct {
	Name            string          `json:"name" validate:"required,min=2"`
	Email           string          `json:"email" validate:"required,email"`
	Password        string          `json:"password" validate:"required,min=8"`
	ConfirmPassword string          `json:"confirm_password" validate:"required,eqfield=Password"`
	Role            models.UserRole `json:"role" validate:"omitempty,oneof=main_admin admin user"`
}

// UserPatch lists the profile fields a user may change. Role is deliberately absent.
type UserPatch struct {
	Name  *string `json:"name" validate:"omitempty,min=2"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// Store runs the session operations against a per-session KV scope.
type Store struct {
	provider    AuthProvider
	provisioner management.Provisioner
	mgmtToken   string
}

func NewStore(provider AuthProvider, provisioner management.Provisioner, mgmtToken string) *Store {
	return &Store{provider: provider, provisioner: provisioner, mgmtToken: mgmtToken}
}

func (s *Store) Login(ctx context.Context, kv store.KV, req LoginRequest) (*models.User, error) {
	if err := apierror.Validate(req); err != nil {
		return nil, err
	}
	user, err := s.provider.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if err := s.start(ctx, kv, user); err != nil {
		return nil, err
	}
	log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return user, nil
}

func (s *Store) Signup(ctx context.Context, kv store.KV, req SignupRequest) (*models.User, error) {
	if req.Role == "" {
		req.Role = models.RoleMainAdmin
	}
	if err := apierror.Validate(req); err != nil {
		return nil, err
	}
	user, err := s.provider.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.start(ctx, kv, user); err != nil {
		return nil, err
	}
	log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user signed up")
	return user, nil
}

// Logout drops the user together with all project and selection state.
func (s *Store) Logout(ctx context.Context, kv store.KV) error {
	if err := kv.Delete(ctx, store.SessionKeys...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current hydrates the session user from the durable store.
func (s *Store) Current(ctx context.Context, kv store.KV) (*models.User, error) {
	var user models.User
	err := kv.Get(ctx, store.KeyUser, &user)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &user, nil
}

func (s *Store) UpdateUser(ctx context.Context, kv store.KV, patch UserPatch) (*models.User, error) {
	user, err := s.Current(ctx, kv)
	if err != nil {
		return nil, err
	}
	if err := apierror.Validate(patch); err != nil {
		return nil, err
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = normalizeEmail(*patch.Email)
	}
	if err := s.provider.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := kv.Set(ctx, store.KeyUser, user); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return user, nil
}

// LinkExternalProject provisions a backing database project and attaches its
// credentials to the session user.
func (s *Store) LinkExternalProject(ctx context.Context, kv store.KV, name string) (*models.ExternalProject, error) {
	user, err := s.Current(ctx, kv)
	if err != nil {
		return nil, err
	}
	creds, err := s.provisioner.CreateProject(ctx, s.mgmtToken, management.CreateProjectParams{Name: name})
	if err != nil {
		return nil, err
	}
	project := &models.ExternalProject{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Name:        name,
		APIURL:      creds.APIURL,
		APIKey:      creds.APIKey,
		AnonKey:     creds.AnonKey,
		DatabaseURL: creds.DatabaseURL,
		IsActive:    true,
	}
	if err := s.provider.AddExternalProject(ctx, user.ID, project); err != nil {
		return nil, err
	}
	user.ExternalProjects = append(user.ExternalProjects, *project)
	if err := kv.Set(ctx, store.KeyUser, user); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return project, nil
}

// start replaces whatever the scope held with a fresh session for user.
func (s *Store) start(ctx context.Context, kv store.KV, user *models.User) error {
	if err := kv.Delete(ctx, store.SessionKeys...); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	if err := kv.Set(ctx, store.KeyUser, user); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := kv.Set(ctx, store.KeyUserRole, user.Role); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
