// Package screens holds the services behind the dashboard screens. Every
// call is scoped to one project and reads records through a datasource.Source.
package screens

import (
	"context"

	"food-delivery-dashboard/models"
)

// Projects is the slice of the project registry the screens depend on.
type Projects interface {
	RefreshStats(ctx context.Context, projectID string) (models.ProjectStats, error)
	Members(ctx context.Context, projectID string) ([]models.ProjectMembership, error)
}

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

func financial(stats models.ProjectStats) models.FinancialSummary {
	return models.FinancialSummary{
		TotalIncome:      stats.TotalIncome,
		TotalExpenditure: stats.TotalExpenditure,
		Balance:          stats.Balance,
	}
}
