package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"food-delivery-dashboard/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

//go:generate mockgen -source=provider.go -destination=mock_provider_test.go -package=session

// AuthProvider is the identity boundary behind the session store.
type AuthProvider interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, req SignupRequest) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	AddExternalProject(ctx context.Context, userID string, project *models.ExternalProject) error
}

// DatabaseProvider stores accounts in the main database with bcrypt hashes.
type DatabaseProvider struct {
	db *gorm.DB
}

func NewDatabaseProvider(db *gorm.DB) *DatabaseProvider {
	return &DatabaseProvider{db: db}
}

func (p *DatabaseProvider) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := p.db.WithContext(ctx).Preload("ExternalProjects").
		Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (p *DatabaseProvider) Register(ctx context.Context, req SignupRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)

	var count int64
	if err := p.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:             strings.TrimSpace(req.Name),
		Email:            email,
		PasswordHash:     string(hash),
		Role:             req.Role,
		ExternalProjects: []models.ExternalProject{},
	}
	if err := p.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Update persists profile fields. The role column is never written.
func (p *DatabaseProvider) Update(ctx context.Context, user *models.User) error {
	email := normalizeEmail(user.Email)

	var count int64
	err := p.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? AND id <> ?", email, user.ID).Count(&count).Error
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return ErrEmailTaken
	}

	err = p.db.WithContext(ctx).Model(&models.User{ID: user.ID}).
		Updates(map[string]interface{}{"name": user.Name, "email": email}).Error
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (p *DatabaseProvider) AddExternalProject(ctx context.Context, userID string, project *models.ExternalProject) error {
	project.UserID = userID
	if err := p.db.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("link external project: %w", err)
	}
	return nil
}

// DemoProvider accepts any credentials and fabricates an account, so the
// dashboard can be explored without registering.
type DemoProvider struct{}

func (DemoProvider) Authenticate(_ context.Context, email, _ string) (*models.User, error) {
	return &models.User{
		ID:               fmt.Sprintf("user-%d", time.Now().UnixNano()),
		Email:            normalizeEmail(email),
		Role:             models.RoleMainAdmin,
		ExternalProjects: []models.ExternalProject{},
	}, nil
}

func (DemoProvider) Register(_ context.Context, req SignupRequest) (*models.User, error) {
	return &models.User{
		ID:               fmt.Sprintf("user-%d", time.Now().UnixNano()),
		Email:            normalizeEmail(req.Email),
		Name:             strings.TrimSpace(req.Name),
		Role:             req.Role,
		ExternalProjects: []models.ExternalProject{},
	}, nil
}

func (DemoProvider) Update(context.Context, *models.User) error { return nil }

func (DemoProvider) AddExternalProject(context.Context, string, *models.ExternalProject) error {
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
