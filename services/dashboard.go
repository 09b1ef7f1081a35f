package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/Gautam3767/product-catalog-backend/models"
	"github.com/Gautam3767/product-catalog-backend/repository"
)

const trendDays = 7

// DashboardStore persists snapshots.
type DashboardStore interface {
	Insert(ctx context.Context, d *models.Dashboard) error
	LatestBefore(ctx context.Context, t models.SnapshotType, before time.Time) (*models.Dashboard, error)
	List(ctx context.Context, limit int64) ([]models.Dashboard, error)
}

// DashboardService aggregates catalog and contact statistics.
type DashboardService struct {
	navbars       CatalogStore[models.NavbarCategory]
	categories    CatalogStore[models.Category]
	subcategories CatalogStore[models.SubCategory]
	products      CatalogStore[models.Product]
	contacts      ContactStore
	snapshots     DashboardStore
	now           func() time.Time
	log           logrus.FieldLogger
}

type DashboardDeps struct {
	NavbarCategories CatalogStore[models.NavbarCategory]
	Categories       CatalogStore[models.Category]
	SubCategories    CatalogStore[models.SubCategory]
	Products         CatalogStore[models.Product]
	Contacts         ContactStore
	Snapshots        DashboardStore
}

func NewDashboardService(deps DashboardDeps, log logrus.FieldLogger) *DashboardService {
	return &DashboardService{
		navbars:       deps.NavbarCategories,
		categories:    deps.Categories,
		subcategories: deps.SubCategories,
		products:      deps.Products,
		contacts:      deps.Contacts,
		snapshots:     deps.Snapshots,
		now:           func() time.Time { return time.Now().UTC() },
		log:           log.WithField("service", "dashboard"),
	}
}

// period resolves the window a snapshot covers. Fixed types end now (or at
// to, when given); custom snapshots need both bounds.
func (s *DashboardService) period(t models.SnapshotType, from, to time.Time) (time.Time, time.Time, error) {
	if !t.Valid() {
		return time.Time{}, time.Time{}, validationError("unknown snapshot type %q", t)
	}
	if t == models.SnapshotCustom {
		if from.IsZero() || to.IsZero() {
			return time.Time{}, time.Time{}, validationError("custom snapshots need from and to")
		}
		if !from.Before(to) {
			return time.Time{}, time.Time{}, validationError("from must be before to")
		}
		return from.UTC(), to.UTC(), nil
	}
	if to.IsZero() {
		to = s.now()
	}
	to = to.UTC()
	return to.Add(-t.Period()), to, nil
}

// Compute aggregates a dashboard for the given period without storing it.
func (s *DashboardService) Compute(ctx context.Context, t models.SnapshotType, from, to time.Time) (*models.Dashboard, error) {
	start, end, err := s.period(t, from, to)
	if err != nil {
		return nil, err
	}

	var (
		d          = &models.Dashboard{Type: t, PeriodStart: start, PeriodEnd: end, GeneratedAt: s.now()}
		ov         = &d.Overview
		byStatus   map[string]int64
		byService  map[string]int64
		daily      map[string]int64
		navbars    []models.NavbarCategory
		categories []models.Category
		products   []models.Product
		baseline   *models.Dashboard
	)
	unread := false
	trendEnd := startOfDay(end).AddDate(0, 0, 1)
	trendStart := trendEnd.AddDate(0, 0, -trendDays)

	g, gctx := errgroup.WithContext(ctx)
	count := func(dst *int64, fn func(context.Context) (int64, error)) {
		g.Go(func() (err error) {
			*dst, err = fn(gctx)
			return err
		})
	}
	count(&ov.TotalContacts, func(ctx context.Context) (int64, error) {
		return s.contacts.Count(ctx, models.ContactFilter{})
	})
	count(&ov.UnreadContacts, func(ctx context.Context) (int64, error) {
		return s.contacts.Count(ctx, models.ContactFilter{IsRead: &unread})
	})
	count(&ov.NewContactsInPeriod, func(ctx context.Context) (int64, error) {
		return s.contacts.Count(ctx, models.ContactFilter{From: start, To: end})
	})
	count(&ov.TotalProducts, func(ctx context.Context) (int64, error) { return s.products.Count(ctx, false) })
	count(&ov.ActiveProducts, func(ctx context.Context) (int64, error) { return s.products.Count(ctx, true) })
	count(&ov.TotalNavbarCategories, func(ctx context.Context) (int64, error) { return s.navbars.Count(ctx, false) })
	count(&ov.TotalCategories, func(ctx context.Context) (int64, error) { return s.categories.Count(ctx, false) })
	count(&ov.ActiveCategories, func(ctx context.Context) (int64, error) { return s.categories.Count(ctx, true) })
	count(&ov.TotalSubCategories, func(ctx context.Context) (int64, error) { return s.subcategories.Count(ctx, false) })

	g.Go(func() (err error) {
		byStatus, err = s.contacts.CountByField(gctx, "status", models.ContactFilter{})
		return err
	})
	g.Go(func() (err error) {
		byService, err = s.contacts.CountByField(gctx, "service", models.ContactFilter{})
		return err
	})
	g.Go(func() (err error) {
		daily, err = s.contacts.DailyCounts(gctx, trendStart, trendEnd)
		return err
	})
	g.Go(func() (err error) {
		navbars, err = s.navbars.List(gctx, FetchLimit)
		return err
	})
	g.Go(func() (err error) {
		categories, err = s.categories.List(gctx, FetchLimit)
		return err
	})
	g.Go(func() (err error) {
		products, err = s.products.List(gctx, FetchLimit)
		return err
	})
	g.Go(func() error {
		b, err := s.snapshots.LatestBefore(gctx, t, start)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		baseline = b
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compute dashboard: %w", err)
	}

	d.Contacts = models.ContactBreakdown{
		New:        byStatus[string(models.StatusNew)],
		Replied:    byStatus[string(models.StatusReplied)],
		InProgress: byStatus[string(models.StatusInProgress)],
		Closed:     byStatus[string(models.StatusClosed)],
	}
	d.ServiceDistribution = make([]models.ServiceCount, 0, len(models.Services))
	for _, sv := range models.Services {
		d.ServiceDistribution = append(d.ServiceDistribution, models.ServiceCount{Service: sv, Count: byService[string(sv)]})
	}
	d.WeeklyTrend = buildTrend(trendStart, daily)
	d.Categories = categoryBreakdown(navbars, categories, products)
	d.CompletionRate = ratio(d.Contacts.Closed, ov.TotalContacts, 100)
	d.AvgResponseTime = ratio(d.Contacts.Replied, ov.TotalContacts, 24)
	d.Growth = growth(ov, baseline)
	return d, nil
}

// CreateSnapshot computes and persists a dashboard.
func (s *DashboardService) CreateSnapshot(ctx context.Context, t models.SnapshotType, from, to time.Time) (*models.Dashboard, error) {
	d, err := s.Compute(ctx, t, from, to)
	if err != nil {
		return nil, err
	}
	if err := s.snapshots.Insert(ctx, d); err != nil {
		return nil, fmt.Errorf("store dashboard: %w", err)
	}
	s.log.WithFields(logrus.Fields{"id": d.ID.Hex(), "type": t}).Info("Dashboard snapshot created")
	return d, nil
}

// Latest returns the newest stored snapshot of any type.
func (s *DashboardService) Latest(ctx context.Context) (*models.Dashboard, error) {
	list, err := s.snapshots.List(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("list dashboards: %w", err)
	}
	if len(list) == 0 {
		return nil, notFound
	}
	return &list[0], nil
}

func (s *DashboardService) List(ctx context.Context, limit int64) ([]models.Dashboard, error) {
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}
	list, err := s.snapshots.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list dashboards: %w", err)
	}
	return list, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// buildTrend lays daily counts out over trendDays calendar days starting at
// from, oldest first, with zero for days without submissions.
func buildTrend(from time.Time, daily map[string]int64) models.Trend {
	tr := models.Trend{Labels: make([]string, trendDays), Counts: make([]int64, trendDays)}
	for i := range trendDays {
		day := from.AddDate(0, 0, i).Format(time.DateOnly)
		tr.Labels[i] = day
		tr.Counts[i] = daily[day]
	}
	return tr
}

func categoryBreakdown(navbars []models.NavbarCategory, categories []models.Category, products []models.Product) []models.CategoryBreakdown {
	idx := make(map[primitive.ObjectID]int, len(navbars))
	out := make([]models.CategoryBreakdown, len(navbars))
	for i, n := range navbars {
		idx[n.ID] = i
		out[i] = models.CategoryBreakdown{NavbarCategoryID: n.ID, Name: n.Name}
	}
	for _, c := range categories {
		if i, ok := idx[c.NavbarCategory]; ok {
			out[i].Categories++
		}
	}
	for _, p := range products {
		if i, ok := idx[p.NavbarCategory]; ok {
			out[i].Products++
		}
	}
	return out
}

// ratio returns part/total*scale rounded to two decimals, or 0 when total is 0.
func ratio(part, total int64, scale float64) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) / float64(total) * scale)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// percentChange is 0 without a baseline value and 100 when growing from zero.
func percentChange(prev, cur int64) float64 {
	switch {
	case prev == 0 && cur == 0:
		return 0
	case prev == 0:
		return 100
	}
	return round2(float64(cur-prev) / float64(prev) * 100)
}

func growth(cur *models.Overview, baseline *models.Dashboard) models.Growth {
	if baseline == nil {
		return models.Growth{}
	}
	id := baseline.ID
	prev := baseline.Overview
	return models.Growth{
		Contacts:   percentChange(prev.TotalContacts, cur.TotalContacts),
		Products:   percentChange(prev.TotalProducts, cur.TotalProducts),
		Categories: percentChange(prev.TotalCategories, cur.TotalCategories),
		BaselineID: &id,
	}
}
