package screens

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"food-delivery-dashboard/apierror"
	"food-delivery-dashboard/datasource"
	"food-delivery-dashboard/models"
	"food-delivery-dashboard/registry"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type ExpenditureQuery struct {
	Category string `form:"category"`
	Sort     string `form:"sort" validate:"omitempty,oneof=asc desc"`
}

type ExpenditureInput struct {
	Category    string          `json:"category" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description" validate:"max=500"`
}

type FinanceOverview struct {
	Summary      models.FinancialSummary `json:"summary"`
	Expenditures []models.Expenditure    `json:"expenditures"`
}

type Finance struct {
	source   datasource.Source
	projects Projects
}

func NewFinance(source datasource.Source, projects Projects) *Finance {
	return &Finance{source: source, projects: projects}
}

func (s *Finance) Overview(ctx context.Context, projectID string, q ExpenditureQuery) (*FinanceOverview, error) {
	if err := apierror.Validate(q); err != nil {
		return nil, err
	}
	orders, err := s.source.ListOrders(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	expenditures, err := s.source.ListExpenditures(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list expenditures: %w", err)
	}

	overview := &FinanceOverview{
		Summary:      financial(registry.Fold(orders, expenditures)),
		Expenditures: make([]models.Expenditure, 0, len(expenditures)),
	}
	for _, e := range expenditures {
		if q.Category == "" || strings.EqualFold(e.Category, q.Category) {
			overview.Expenditures = append(overview.Expenditures, e)
		}
	}
	sort.SliceStable(overview.Expenditures, func(i, j int) bool {
		a, b := overview.Expenditures[i].Date, overview.Expenditures[j].Date
		if q.Sort == SortAsc {
			return a.Before(b)
		}
		return a.After(b)
	})
	return overview, nil
}

// AddExpenditure records spending in one of the fixed categories and returns
// the recomputed financial summary.
func (s *Finance) AddExpenditure(ctx context.Context, projectID string, input ExpenditureInput) (*models.Expenditure, models.FinancialSummary, error) {
	if err := apierror.Validate(input); err != nil {
		return nil, models.FinancialSummary{}, err
	}
	category, ok := canonicalCategory(input.Category)
	if !ok {
		return nil, models.FinancialSummary{}, apierror.NewValidation("category", "oneof="+strings.Join(models.ExpenditureCategories, " "))
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	expenditure := &models.Expenditure{
		Category:    category,
		Amount:      input.Amount,
		Date:        input.Date,
		Description: strings.TrimSpace(input.Description),
		ProjectID:   projectID,
	}
	if err := s.source.CreateExpenditure(ctx, expenditure); err != nil {
		return nil, models.FinancialSummary{}, fmt.Errorf("create expenditure: %w", err)
	}
	stats, err := s.projects.RefreshStats(ctx, projectID)
	if err != nil {
		return nil, models.FinancialSummary{}, err
	}
	log.Info().Str("project_id", projectID).Str("category", category).Str("amount", input.Amount.String()).Msg("expenditure added")
	return expenditure, financial(stats), nil
}

func canonicalCategory(category string) (string, bool) {
	for _, c := range models.ExpenditureCategories {
		if strings.EqualFold(c, strings.TrimSpace(category)) {
			return c, true
		}
	}
	return "", false
}
