package screens

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"food-delivery-dashboard/datasource"
	"food-delivery-dashboard/models"
	"food-delivery-dashboard/registry"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Bucket aggregates the orders falling into one chart period.
type Bucket struct {
	Name       string          `json:"name"`
	Orders     int             `json:"orders"`
	Revenue    decimal.Decimal `json:"revenue"`
	Deliveries int             `json:"deliveries"`
}

type Dashboard struct {
	Delivery models.DeliveryStats    `json:"delivery"`
	Finance  models.FinancialSummary `json:"finance"`
	Monthly  []Bucket                `json:"monthly"`
	Weekly   []Bucket                `json:"weekly"`
}

type Statistics struct {
	source datasource.Source
}

func NewStatistics(source datasource.Source) *Statistics {
	return &Statistics{source: source}
}

func (s *Statistics) Dashboard(ctx context.Context, projectID string) (*Dashboard, error) {
	var (
		orders       []models.Order
		expenditures []models.Expenditure
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.source.ListOrders(gctx, projectID)
		if err != nil {
			return fmt.Errorf("list orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		expenditures, err = s.source.ListExpenditures(gctx, projectID)
		if err != nil {
			return fmt.Errorf("list expenditures: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Dashboard{
		Delivery: deliveryStats(orders),
		Finance:  financial(registry.Fold(orders, expenditures)),
		Monthly:  monthlyBuckets(orders),
		Weekly:   weekdayBuckets(orders),
	}, nil
}

func monthlyBuckets(orders []models.Order) []Bucket {
	type month struct {
		key    time.Time
		bucket *Bucket
	}
	byMonth := map[time.Time]*month{}
	for _, o := range orders {
		key := time.Date(o.Date.Year(), o.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		m, ok := byMonth[key]
		if !ok {
			m = &month{key: key, bucket: &Bucket{Name: key.Format("Jan 2006"), Revenue: decimal.Zero}}
			byMonth[key] = m
		}
		add(m.bucket, o)
	}

	months := make([]*month, 0, len(byMonth))
	for _, m := range byMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].key.Before(months[j].key) })

	out := make([]Bucket, len(months))
	for i, m := range months {
		out[i] = *m.bucket
	}
	return out
}

// weekdayBuckets always returns seven buckets, Monday first.
func weekdayBuckets(orders []models.Order) []Bucket {
	out := make([]Bucket, 7)
	for i := range out {
		out[i] = Bucket{Name: time.Weekday((i + 1) % 7).String()[:3], Revenue: decimal.Zero}
	}
	for _, o := range orders {
		add(&out[(int(o.Date.Weekday())+6)%7], o)
	}
	return out
}

func add(b *Bucket, o models.Order) {
	b.Orders++
	b.Revenue = b.Revenue.Add(o.Amount)
	if o.Status == models.StatusDelivered {
		b.Deliveries++
	}
}

var csvHeader = []string{"serial_number", "date", "house_number", "name", "number_of_people", "amount", "status"}

// ExportCSV writes every order of the project to w, oldest first.
func (s *Statistics) ExportCSV(ctx context.Context, projectID string, w io.Writer) error {
	orders, err := s.source.ListOrders(ctx, projectID)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].Date.Before(orders[j].Date) })

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, o := range orders {
		record := []string{
			o.SerialNumber,
			o.Date.Format("2006-01-02"),
			o.HouseNumber,
			o.Name,
			strconv.Itoa(o.NumberOfPeople),
			o.Amount.StringFixed(2),
			string(o.Status),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
