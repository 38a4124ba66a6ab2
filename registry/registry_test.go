package registry

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"food-delivery-dashboard/apierror"
	"food-delivery-dashboard/config"
	"food-delivery-dashboard/datasource"
	"food-delivery-dashboard/models"
	"food-delivery-dashboard/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	owner  = &models.User{ID: "owner-1", Name: "Olive", Email: "olive@example.com", Role: models.RoleMainAdmin}
	member = &models.User{ID: "member-1", Name: "Mo", Email: "mo@example.com", Role: models.RoleUser}
)

func setup(t *testing.T) (*Registry, *gorm.DB, *datasource.GormSource) {
	t.Helper()
	db, err := config.InitDB(":memory:")
	require.NoError(t, err)
	src := datasource.NewGormSource(db)
	return New(db, src), db, src
}

func countProjects(t *testing.T, db *gorm.DB) int64 {
	var n int64
	require.NoError(t, db.Model(&models.Project{}).Count(&n).Error)
	return n
}

func TestGenerateCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{6}$`)
	for i := 0; i < 500; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
	}
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	reg, db, _ := setup(t)

	tests := []struct {
		name  string
		input CreateProjectInput
		field string
	}{
		{"name too short", CreateProjectInput{Name: "Ab", Code: "ACME"}, "name"},
		{"name too long", CreateProjectInput{Name: strings.Repeat("x", 51), Code: "ACME"}, "name"},
		{"code too short", CreateProjectInput{Name: "Acme", Code: "ABC"}, "code"},
		{"code too long", CreateProjectInput{Name: "Acme", Code: "ABCDEFGHIJK"}, "code"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Create(ctx, store.NewMemory(), owner, tt.input)
			var verr *apierror.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
			assert.Zero(t, countProjects(t, db))
		})
	}
}

func TestCreate_BoundaryLengthsAccepted(t *testing.T) {
	ctx := context.Background()
	reg, _, _ := setup(t)

	_, err := reg.Create(ctx, store.NewMemory(), owner, CreateProjectInput{Name: "Abc", Code: "ABCD"})
	require.NoError(t, err)
	_, err = reg.Create(ctx, store.NewMemory(), owner, CreateProjectInput{Name: strings.Repeat("x", 50), Code: "ABCDEFGHIJ"})
	require.NoError(t, err)
}

func TestCreate_OnlyMainAdmin(t *testing.T) {
	reg, db, _ := setup(t)
	_, err := reg.Create(context.Background(), store.NewMemory(), member, CreateProjectInput{Name: "Acme", Code: "ACME01"})
	assert.ErrorIs(t, err, ErrCreateForbidden)
	assert.Zero(t, countProjects(t, db))
}

func TestCreate_WritesSessionAndOwnerMembership(t *testing.T) {
	ctx := context.Background()
	reg, _, _ := setup(t)
	kv := store.NewMemory()

	summary, err := reg.Create(ctx, kv, owner, CreateProjectInput{Name: " Acme ", Code: "acme01"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", summary.Project.Name)
	assert.Equal(t, "ACME01", summary.Project.Code)
	assert.True(t, summary.Stats.Balance.IsZero())

	var name, code string
	require.NoError(t, kv.Get(ctx, store.KeyProjectName, &name))
	require.NoError(t, kv.Get(ctx, store.KeyProjectCode, &code))
	assert.Equal(t, "Acme", name)
	assert.Equal(t, "ACME01", code)

	var projects []models.ProjectSummary
	require.NoError(t, kv.Get(ctx, store.KeyUserProjects, &projects))
	require.Len(t, projects, 1)
	assert.Equal(t, summary.Project.ID, projects[0].Project.ID)

	members, err := reg.Members(ctx, summary.Project.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, owner.ID, members[0].UserID)

	_, err = reg.Create(ctx, kv, owner, CreateProjectInput{Name: "Other", Code: "ACME01"})
	assert.ErrorIs(t, err, ErrCodeTaken)
}

func TestJoin(t *testing.T) {
	ctx := context.Background()
	reg, db, _ := setup(t)
	created, err := reg.Create(ctx, store.NewMemory(), owner, CreateProjectInput{Name: "Acme", Code: "ACME01"})
	require.NoError(t, err)

	kv := store.NewMemory()
	_, err = reg.Join(ctx, kv, member, "ACME")
	assert.ErrorIs(t, err, ErrInvalidCode)
	_, err = reg.Join(ctx, kv, member, "")
	assert.ErrorIs(t, err, ErrInvalidCode)
	_, err = reg.Join(ctx, kv, member, "ZZZZZZ")
	assert.ErrorIs(t, err, ErrProjectNotFound)

	joined, err := reg.Join(ctx, kv, member, "acme01")
	require.NoError(t, err)
	assert.Equal(t, created.Project.ID, joined.Project.ID)
	_, err = reg.Join(ctx, kv, member, "ACME01")
	require.NoError(t, err)

	// joining after creating another project points both keys at the joined one
	mine := store.NewMemory()
	_, err = reg.Create(ctx, mine, owner, CreateProjectInput{Name: "Bistro", Code: "BISTRO"})
	require.NoError(t, err)
	_, err = reg.Join(ctx, mine, owner, "ACME01")
	require.NoError(t, err)
	var name, code string
	require.NoError(t, mine.Get(ctx, store.KeyProjectName, &name))
	require.NoError(t, mine.Get(ctx, store.KeyProjectCode, &code))
	assert.Equal(t, "Acme", name)
	assert.Equal(t, "ACME01", code)

	var n int64
	require.NoError(t, db.Model(&models.ProjectMembership{}).Where("user_id = ?", member.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	list, err := reg.List(ctx, kv, member)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSelectAndSelected(t *testing.T) {
	ctx := context.Background()
	reg, _, _ := setup(t)
	kv := store.NewMemory()

	_, err := reg.Selected(ctx, kv, owner)
	assert.ErrorIs(t, err, ErrNoProjectSelected)

	created, err := reg.Create(ctx, kv, owner, CreateProjectInput{Name: "Acme", Code: "ACME01"})
	require.NoError(t, err)

	_, err = reg.Select(ctx, store.NewMemory(), member, created.Project.ID)
	assert.ErrorIs(t, err, ErrNotMember)

	_, err = reg.Select(ctx, kv, owner, created.Project.ID)
	require.NoError(t, err)
	selected, err := reg.Selected(ctx, kv, owner)
	require.NoError(t, err)
	assert.Equal(t, created.Project.ID, selected.Project.ID)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	reg, db, src := setup(t)
	kv := store.NewMemory()

	created, err := reg.Create(ctx, kv, owner, CreateProjectInput{Name: "Acme", Code: "ACME01"})
	require.NoError(t, err)
	id := created.Project.ID
	_, err = reg.Select(ctx, kv, owner, id)
	require.NoError(t, err)
	require.NoError(t, src.CreateOrder(ctx, &models.Order{ProjectID: id, SerialNumber: "SN-1", HouseNumber: "H-1", Name: "A", Amount: decimal.NewFromInt(1)}))

	memberKV := store.NewMemory()
	_, err = reg.Join(ctx, memberKV, member, "ACME01")
	require.NoError(t, err)
	assert.ErrorIs(t, reg.Remove(ctx, memberKV, member, id), ErrNotOwner)

	require.NoError(t, reg.Remove(ctx, kv, owner, id))
	assert.Zero(t, countProjects(t, db))

	var selected models.ProjectSummary
	assert.ErrorIs(t, kv.Get(ctx, store.KeySelectedProject, &selected), store.ErrNotFound)
	var projects []models.ProjectSummary
	require.NoError(t, kv.Get(ctx, store.KeyUserProjects, &projects))
	assert.Empty(t, projects)

	orders, err := src.ListOrders(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, orders)

	_, err = reg.Selected(ctx, memberKV, member)
	assert.ErrorIs(t, err, ErrNoProjectSelected)
	assert.ErrorIs(t, reg.Remove(ctx, kv, owner, id), ErrProjectNotFound)
}

func TestRegenerateCode(t *testing.T) {
	ctx := context.Background()
	reg, _, _ := setup(t)
	created, err := reg.Create(ctx, store.NewMemory(), owner, CreateProjectInput{Name: "Acme", Code: "ACME"})
	require.NoError(t, err)

	_, err = reg.RegenerateCode(ctx, member, created.Project.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	code, err := reg.RegenerateCode(ctx, owner, created.Project.ID)
	require.NoError(t, err)
	assert.Len(t, code, CodeLength)

	joined, err := reg.Join(ctx, store.NewMemory(), member, code)
	require.NoError(t, err)
	assert.Equal(t, created.Project.ID, joined.Project.ID)
}

func TestRefreshStats_MatchesFold(t *testing.T) {
	ctx := context.Background()
	reg, db, src := setup(t)
	created, err := reg.Create(ctx, store.NewMemory(), owner, CreateProjectInput{Name: "Acme", Code: "ACME01"})
	require.NoError(t, err)
	id := created.Project.ID

	require.NoError(t, src.CreateOrder(ctx, &models.Order{ProjectID: id, SerialNumber: "SN-1", HouseNumber: "H-1", Name: "A", Amount: decimal.NewFromInt(1000), Status: models.StatusPending}))
	require.NoError(t, src.CreateOrder(ctx, &models.Order{ProjectID: id, SerialNumber: "SN-2", HouseNumber: "H-2", Name: "B", Amount: decimal.RequireFromString("250.50"), Status: models.StatusDelivered}))
	require.NoError(t, src.CreateExpenditure(ctx, &models.Expenditure{ProjectID: id, Category: "Misc", Amount: decimal.NewFromInt(300)}))

	stats, err := reg.RefreshStats(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, 1, stats.PendingDeliveries)
	assert.True(t, stats.TotalIncome.Equal(decimal.RequireFromString("1250.50")))
	assert.True(t, stats.Balance.Equal(decimal.RequireFromString("950.50")))

	var stored models.Project
	require.NoError(t, db.First(&stored, "id = ?", id).Error)
	assert.Equal(t, 2, stored.Stats.TotalOrders)
	assert.True(t, stored.Stats.Balance.Equal(stats.Balance))
}

func TestFold_Empty(t *testing.T) {
	stats := Fold(nil, nil)
	assert.Zero(t, stats.TotalOrders)
	assert.True(t, stats.Balance.IsZero())
}
