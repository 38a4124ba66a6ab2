package navigation

import (
	"testing"

	"food-delivery-dashboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paths(ds []Destination) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Path
	}
	return out
}

func TestVisible_MatchesAllowLists(t *testing.T) {
	for _, role := range models.AllRoles {
		var want []string
		for _, d := range Destinations() {
			for _, r := range d.AllowedRoles {
				if r == role {
					want = append(want, d.Path)
				}
			}
		}
		assert.Equal(t, want, paths(Visible(role)), "role %s", role)
	}
}

func TestVisible_PerRole(t *testing.T) {
	assert.Equal(t, []string{"/", "/orders", "/delivery", "/finance", "/stats", "/project"}, paths(Visible(models.RoleMainAdmin)))
	assert.Equal(t, []string{"/", "/orders", "/delivery", "/finance", "/stats"}, paths(Visible(models.RoleAdmin)))
	assert.Equal(t, []string{"/", "/orders", "/delivery", "/stats"}, paths(Visible(models.RoleUser)))
	assert.Empty(t, Visible(models.UserRole("guest")))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		role       models.UserRole
		path       string
		want       string
		redirected bool
	}{
		{"allowed destination", models.RoleAdmin, "/finance", "/finance", false},
		{"viewer redirected from finance", models.RoleUser, "/finance", "/", true},
		{"manager redirected from settings", models.RoleAdmin, "/project", "/", true},
		{"owner opens settings", models.RoleMainAdmin, "/project/", "/project", false},
		{"query string ignored", models.RoleUser, "/orders?tab=active", "/orders", false},
		{"empty path is dashboard", models.RoleUser, "", "/", false},
		{"public auth route", models.RoleUser, "/auth", "/auth", false},
		{"public setup route", models.UserRole("guest"), "/project-setup", "/project-setup", false},
		{"unknown path", models.RoleMainAdmin, "/nope", "*", false},
		{"unknown role falls back to auth", models.UserRole("guest"), "/orders", "/auth", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.role, tt.path)
			assert.Equal(t, tt.want, res.Route.Path)
			assert.Equal(t, tt.redirected, res.Redirected)
		})
	}
}

func TestRoutes_IncludesEveryView(t *testing.T) {
	var got []string
	for _, r := range Routes() {
		got = append(got, r.Path)
	}
	assert.Equal(t, []string{"/", "/orders", "/delivery", "/finance", "/stats", "/project", "/auth", "/project-setup", "*"}, got)
}

func TestLookup(t *testing.T) {
	d, ok := Lookup("stats")
	require.True(t, ok)
	assert.Equal(t, "Statistics", d.Name)

	_, ok = Lookup("/auth")
	assert.False(t, ok)
}
