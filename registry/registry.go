// Package registry manages projects (tenants): creation, join codes,
// membership, the active selection of a session and the stats snapshot.
package registry

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"food-delivery-dashboard/apierror"
	"food-delivery-dashboard/datasource"
	"food-delivery-dashboard/models"
	"food-delivery-dashboard/store"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCodeTaken         = errors.New("project code already in use")
	ErrInvalidCode       = errors.New("invalid project code")
	ErrProjectNotFound   = errors.New("project not found")
	ErrNotOwner          = errors.New("only the project owner can do this")
	ErrNotMember         = errors.New("not a member of this project")
	ErrNoProjectSelected = errors.New("no project selected")
	ErrCreateForbidden   = errors.New("only a main admin can create projects")
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	CodeLength   = 6
	codeAttempts = 10
)

type CreateProjectInput struct {
	Name   string `json:"name" validate:"required,min=3,max=50"`
	Code   string `json:"code" validate:"required,min=4,max=10"`
	APIKey string `json:"api_key"`
	DBKey  string `json:"db_key"`
}

type Registry struct {
	db     *gorm.DB
	source datasource.Source
}

func New(db *gorm.DB, source datasource.Source) *Registry {
	return &Registry{db: db, source: source}
}

// GenerateCode returns a random join code of CodeLength symbols from A-Z0-9.
func GenerateCode() (string, error) {
	size := big.NewInt(int64(len(codeAlphabet)))
	var b strings.Builder
	b.Grow(CodeLength)
	for i := 0; i < CodeLength; i++ {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// GenerateUniqueCode returns a code no existing project uses.
func (r *Registry) GenerateUniqueCode(ctx context.Context) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code, err := GenerateCode()
		if err != nil {
			return "", err
		}
		taken, err := r.codeExists(ctx, r.db, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeTaken
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (r *Registry) codeExists(ctx context.Context, tx *gorm.DB, code string) (bool, error) {
	var count int64
	if err := tx.WithContext(ctx).Model(&models.Project{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check code: %w", err)
	}
	return count > 0, nil
}

// Create registers a new project owned by owner and records it in the session.
func (r *Registry) Create(ctx context.Context, kv store.KV, owner *models.User, input CreateProjectInput) (*models.ProjectSummary, error) {
	if owner.Role != models.RoleMainAdmin {
		return nil, ErrCreateForbidden
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Code = normalizeCode(input.Code)
	if err := apierror.Validate(input); err != nil {
		return nil, err
	}

	project := models.Project{
		Name:    input.Name,
		Code:    input.Code,
		OwnerID: owner.ID,
		APIKey:  input.APIKey,
		DBKey:   input.DBKey,
		Stats:   zeroStats(),
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := r.codeExists(ctx, tx, project.Code)
		if err != nil {
			return err
		}
		if taken {
			return ErrCodeTaken
		}
		if err := tx.Create(&project).Error; err != nil {
			return fmt.Errorf("create project: %w", err)
		}
		membership := models.ProjectMembership{ProjectID: project.ID, UserID: owner.ID, Role: owner.Role}
		if err := tx.Create(&membership).Error; err != nil {
			return fmt.Errorf("add owner: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("project_id", project.ID).Str("owner_id", owner.ID).Msg("project created")

	if err := kv.Set(ctx, store.KeyProjectName, project.Name); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	if err := kv.Set(ctx, store.KeyProjectCode, project.Code); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	if _, err := r.List(ctx, kv, owner); err != nil {
		return nil, err
	}
	summary := models.NewSummary(project)
	return &summary, nil
}

// Join adds user to the project holding code. Joining twice is a no-op.
func (r *Registry) Join(ctx context.Context, kv store.KV, user *models.User, code string) (*models.ProjectSummary, error) {
	code = normalizeCode(code)
	if len(code) != CodeLength {
		return nil, ErrInvalidCode
	}

	var project models.Project
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}

	member, err := r.isMember(ctx, project.ID, user.ID)
	if err != nil {
		return nil, err
	}
	if !member {
		membership := models.ProjectMembership{ProjectID: project.ID, UserID: user.ID, Role: user.Role}
		if err := r.db.WithContext(ctx).Create(&membership).Error; err != nil {
			return nil, fmt.Errorf("join project: %w", err)
		}
		log.Info().Str("project_id", project.ID).Str("user_id", user.ID).Msg("user joined project")
	}

	if err := kv.Set(ctx, store.KeyProjectName, project.Name); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	if err := kv.Set(ctx, store.KeyProjectCode, project.Code); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	if _, err := r.List(ctx, kv, user); err != nil {
		return nil, err
	}
	summary := models.NewSummary(project)
	return &summary, nil
}

// Get returns a project the user belongs to.
func (r *Registry) Get(ctx context.Context, user *models.User, projectID string) (*models.ProjectSummary, error) {
	project, err := r.find(ctx, projectID)
	if err != nil {
		return nil, err
	}
	member, err := r.isMember(ctx, projectID, user.ID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotMember
	}
	summary := models.NewSummary(*project)
	return &summary, nil
}

// Select makes projectID the active project of the session.
func (r *Registry) Select(ctx context.Context, kv store.KV, user *models.User, projectID string) (*models.ProjectSummary, error) {
	summary, err := r.Get(ctx, user, projectID)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", projectID).Update("last_active", time.Now()).Error; err != nil {
		log.Warn().Err(err).Str("project_id", projectID).Msg("touch last_active failed")
	}

	if err := kv.Set(ctx, store.KeySelectedProject, summary); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	if err := kv.Set(ctx, store.KeyProjectName, summary.Project.Name); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	if err := kv.Set(ctx, store.KeyProjectCode, summary.Project.Code); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return summary, nil
}

// Selected reloads the active project of the session from the database.
func (r *Registry) Selected(ctx context.Context, kv store.KV, user *models.User) (*models.ProjectSummary, error) {
	var selected models.ProjectSummary
	err := kv.Get(ctx, store.KeySelectedProject, &selected)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoProjectSelected
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	summary, err := r.Get(ctx, user, selected.Project.ID)
	if errors.Is(err, ErrProjectNotFound) {
		return nil, ErrNoProjectSelected
	}
	return summary, err
}

// Remove deletes an owned project with its memberships and tenant records.
func (r *Registry) Remove(ctx context.Context, kv store.KV, user *models.User, projectID string) error {
	project, err := r.find(ctx, projectID)
	if err != nil {
		return err
	}
	if project.OwnerID != user.ID {
		return ErrNotOwner
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectMembership{}).Error; err != nil {
			return fmt.Errorf("delete memberships: %w", err)
		}
		if err := tx.Delete(&models.Project{}, "id = ?", projectID).Error; err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := r.source.DeleteProjectData(ctx, projectID); err != nil {
		return fmt.Errorf("delete project data: %w", err)
	}
	log.Info().Str("project_id", projectID).Str("user_id", user.ID).Msg("project removed")

	var selected models.ProjectSummary
	err = kv.Get(ctx, store.KeySelectedProject, &selected)
	switch {
	case err == nil && selected.Project.ID == projectID:
		if err := kv.Delete(ctx, store.KeySelectedProject, store.KeyProjectName, store.KeyProjectCode); err != nil {
			return fmt.Errorf("clear selection: %w", err)
		}
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("load session: %w", err)
	}

	_, err = r.List(ctx, kv, user)
	return err
}

// RegenerateCode gives an owned project a fresh join code.
func (r *Registry) RegenerateCode(ctx context.Context, user *models.User, projectID string) (string, error) {
	project, err := r.find(ctx, projectID)
	if err != nil {
		return "", err
	}
	if project.OwnerID != user.ID {
		return "", ErrNotOwner
	}
	code, err := r.GenerateUniqueCode(ctx)
	if err != nil {
		return "", err
	}
	if err := r.db.WithContext(ctx).Model(project).Update("code", code).Error; err != nil {
		return "", fmt.Errorf("update code: %w", err)
	}
	return code, nil
}

// List returns the projects user belongs to and caches them in the session.
func (r *Registry) List(ctx context.Context, kv store.KV, user *models.User) ([]models.ProjectSummary, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Joins("JOIN project_memberships ON project_memberships.project_id = projects.id").
		Where("project_memberships.user_id = ?", user.ID).
		Order("projects.created_at asc").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	summaries := make([]models.ProjectSummary, len(projects))
	for i, p := range projects {
		summaries[i] = models.NewSummary(p)
	}
	if err := kv.Set(ctx, store.KeyUserProjects, summaries); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return summaries, nil
}

func (r *Registry) Members(ctx context.Context, projectID string) ([]models.ProjectMembership, error) {
	var members []models.ProjectMembership
	err := r.db.WithContext(ctx).Preload("User").Where("project_id = ?", projectID).Order("created_at asc").Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// RefreshStats recomputes the stats snapshot of a project from its records
// and stores it.
func (r *Registry) RefreshStats(ctx context.Context, projectID string) (models.ProjectStats, error) {
	orders, err := r.source.ListOrders(ctx, projectID)
	if err != nil {
		return models.ProjectStats{}, fmt.Errorf("load orders: %w", err)
	}
	expenditures, err := r.source.ListExpenditures(ctx, projectID)
	if err != nil {
		return models.ProjectStats{}, fmt.Errorf("load expenditures: %w", err)
	}

	stats := Fold(orders, expenditures)
	err = r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", projectID).Updates(map[string]any{
		"stats_total_orders":       stats.TotalOrders,
		"stats_pending_deliveries": stats.PendingDeliveries,
		"stats_total_income":       stats.TotalIncome,
		"stats_total_expenditure":  stats.TotalExpenditure,
		"stats_balance":            stats.Balance,
		"last_active":              time.Now(),
	}).Error
	if err != nil {
		return models.ProjectStats{}, fmt.Errorf("save stats: %w", err)
	}
	return stats, nil
}

// Fold computes project stats from scratch. Income counts every order
// regardless of delivery status.
func Fold(orders []models.Order, expenditures []models.Expenditure) models.ProjectStats {
	stats := zeroStats()
	for _, o := range orders {
		stats.TotalOrders++
		if o.Status == models.StatusPending {
			stats.PendingDeliveries++
		}
		stats.TotalIncome = stats.TotalIncome.Add(o.Amount)
	}
	for _, e := range expenditures {
		stats.TotalExpenditure = stats.TotalExpenditure.Add(e.Amount)
	}
	stats.Balance = stats.TotalIncome.Sub(stats.TotalExpenditure)
	return stats
}

func zeroStats() models.ProjectStats {
	return models.ProjectStats{TotalIncome: decimal.Zero, TotalExpenditure: decimal.Zero, Balance: decimal.Zero}
}

func (r *Registry) find(ctx context.Context, projectID string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Where("id = ?", projectID).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	return &project, nil
}

func (r *Registry) isMember(ctx context.Context, projectID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProjectMembership{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return count > 0, nil
}
