package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Gautam3767/product-catalog-backend/models"
	"github.com/Gautam3767/product-catalog-backend/repository"
)

type memDashboards struct {
	items []models.Dashboard
}

func (m *memDashboards) Insert(_ context.Context, d *models.Dashboard) error {
	d.ID = primitive.NewObjectID()
	m.items = append(m.items, *d)
	return nil
}

func (m *memDashboards) LatestBefore(_ context.Context, t models.SnapshotType, before time.Time) (*models.Dashboard, error) {
	var best *models.Dashboard
	for i := range m.items {
		d := &m.items[i]
		if d.Type != t || d.GeneratedAt.After(before) {
			continue
		}
		if best == nil || d.GeneratedAt.After(best.GeneratedAt) {
			best = d
		}
	}
	if best == nil {
		return nil, repository.ErrNotFound
	}
	out := *best
	return &out, nil
}

func (m *memDashboards) List(_ context.Context, limit int64) ([]models.Dashboard, error) {
	out := append([]models.Dashboard(nil), m.items...)
	sort.Slice(out, func(i, j int) bool { return out[i].GeneratedAt.After(out[j].GeneratedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

var dashboardNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

type dashboardHarness struct {
	svc       *DashboardService
	contacts  *memContacts
	snapshots *memDashboards
	catalog   *catalogStores
}

func newDashboardHarness(contacts ...models.Contact) *dashboardHarness {
	h := &dashboardHarness{
		contacts:  newMemContacts(contacts...),
		snapshots: &memDashboards{},
		catalog:   newCatalogStores(newCatalogFixture()),
	}
	h.svc = NewDashboardService(DashboardDeps{
		NavbarCategories: h.catalog.navbars,
		Categories:       h.catalog.categories,
		SubCategories:    h.catalog.subcategories,
		Products:         h.catalog.products,
		Contacts:         h.contacts,
		Snapshots:        h.snapshots,
	}, nullLogger())
	h.svc.now = func() time.Time { return dashboardNow }
	return h
}

func TestDashboard_EmptyInboxHasNoDivisionByZero(t *testing.T) {
	h := newDashboardHarness()

	d, err := h.svc.Compute(context.Background(), models.SnapshotWeekly, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), d.Overview.TotalContacts)
	assert.Equal(t, 0.0, d.CompletionRate)
	assert.Equal(t, 0.0, d.AvgResponseTime)
	assert.Equal(t, models.Growth{}, d.Growth, "no baseline, no growth")
	assert.Equal(t, []int64{0, 0, 0, 0, 0, 0, 0}, d.WeeklyTrend.Counts)
	assert.Len(t, d.ServiceDistribution, 7)
}

func TestDashboard_Compute(t *testing.T) {
	h := newDashboardHarness(
		contactAt(models.StatusClosed, models.ServiceOther, true, dashboardNow.Add(-time.Hour)),
		contactAt(models.StatusReplied, models.ServicePartnership, true, dashboardNow.Add(-24*time.Hour)),
		contactAt(models.StatusReplied, models.ServiceOther, false, dashboardNow.AddDate(0, 0, -6)),
		contactAt(models.StatusNew, models.ServiceOther, false, dashboardNow.AddDate(0, 0, -7).Add(-time.Hour)),
	)

	d, err := h.svc.Compute(context.Background(), models.SnapshotWeekly, time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, dashboardNow, d.PeriodEnd)
	assert.Equal(t, dashboardNow.AddDate(0, 0, -7), d.PeriodStart)
	assert.Equal(t, dashboardNow, d.GeneratedAt)

	ov := d.Overview
	assert.Equal(t, int64(4), ov.TotalContacts)
	assert.Equal(t, int64(2), ov.UnreadContacts)
	assert.Equal(t, int64(3), ov.NewContactsInPeriod)
	assert.Equal(t, int64(2), ov.TotalProducts)
	assert.Equal(t, int64(2), ov.TotalNavbarCategories)
	assert.Equal(t, int64(2), ov.TotalCategories)
	assert.Equal(t, int64(2), ov.TotalSubCategories)

	assert.Equal(t, models.ContactBreakdown{New: 1, Replied: 2, Closed: 1}, d.Contacts)
	assert.Equal(t, 25.0, d.CompletionRate)
	assert.Equal(t, 12.0, d.AvgResponseTime)

	assert.Equal(t, []string{
		"2026-03-04", "2026-03-05", "2026-03-06", "2026-03-07", "2026-03-08", "2026-03-09", "2026-03-10",
	}, d.WeeklyTrend.Labels)
	assert.Equal(t, []int64{1, 0, 0, 0, 0, 1, 1}, d.WeeklyTrend.Counts)

	assert.Contains(t, d.ServiceDistribution, models.ServiceCount{Service: models.ServiceOther, Count: 3})
	assert.Contains(t, d.ServiceDistribution, models.ServiceCount{Service: models.ServiceCloudServices, Count: 0})

	require.Len(t, d.Categories, 2)
	assert.Equal(t, "Networking", d.Categories[0].Name)
	assert.Equal(t, int64(1), d.Categories[0].Categories)
	assert.Equal(t, int64(1), d.Categories[0].Products)
}

func TestDashboard_GrowthAgainstPreviousSnapshot(t *testing.T) {
	h := newDashboardHarness(
		contactAt(models.StatusNew, models.ServiceOther, false, dashboardNow.Add(-time.Hour)),
		contactAt(models.StatusNew, models.ServiceOther, false, dashboardNow.Add(-2*time.Hour)),
		contactAt(models.StatusNew, models.ServiceOther, false, dashboardNow.Add(-3*time.Hour)),
	)
	ctx := context.Background()

	// Too recent to be the baseline of a weekly snapshot ending now.
	recent := models.Dashboard{Type: models.SnapshotWeekly, GeneratedAt: dashboardNow.AddDate(0, 0, -1), Overview: models.Overview{TotalContacts: 1}}
	old := models.Dashboard{Type: models.SnapshotWeekly, GeneratedAt: dashboardNow.AddDate(0, 0, -8), Overview: models.Overview{TotalContacts: 2, TotalProducts: 0, TotalCategories: 4}}
	other := models.Dashboard{Type: models.SnapshotDaily, GeneratedAt: dashboardNow.AddDate(0, 0, -9), Overview: models.Overview{TotalContacts: 100}}
	for _, d := range []models.Dashboard{recent, old, other} {
		require.NoError(t, h.snapshots.Insert(ctx, &d))
	}
	baselineID := h.snapshots.items[1].ID

	d, err := h.svc.Compute(ctx, models.SnapshotWeekly, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.NotNil(t, d.Growth.BaselineID)
	assert.Equal(t, baselineID, *d.Growth.BaselineID)
	assert.Equal(t, 50.0, d.Growth.Contacts)
	assert.Equal(t, 100.0, d.Growth.Products, "growth from zero")
	assert.Equal(t, -50.0, d.Growth.Categories)
}

func TestPercentChange(t *testing.T) {
	assert.Equal(t, 0.0, percentChange(0, 0))
	assert.Equal(t, 100.0, percentChange(0, 7))
	assert.Equal(t, 33.33, percentChange(3, 4))
	assert.Equal(t, -100.0, percentChange(5, 0))
}

func TestDashboard_PeriodValidation(t *testing.T) {
	h := newDashboardHarness()
	ctx := context.Background()

	_, err := h.svc.Compute(ctx, "yearly", time.Time{}, time.Time{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = h.svc.Compute(ctx, models.SnapshotCustom, time.Time{}, dashboardNow)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = h.svc.Compute(ctx, models.SnapshotCustom, dashboardNow, dashboardNow.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrValidation)

	d, err := h.svc.Compute(ctx, models.SnapshotCustom, dashboardNow.AddDate(0, -1, 0), dashboardNow)
	require.NoError(t, err)
	assert.Equal(t, models.SnapshotCustom, d.Type)
}

func TestDashboard_SnapshotsAndLatest(t *testing.T) {
	h := newDashboardHarness()
	ctx := context.Background()

	_, err := h.svc.Latest(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	d, err := h.svc.CreateSnapshot(ctx, models.SnapshotDaily, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.False(t, d.ID.IsZero())

	latest, err := h.svc.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, d.ID, latest.ID)

	list, err := h.svc.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDashboard_StoreFailureAborts(t *testing.T) {
	h := newDashboardHarness()
	boom := errors.New("server selection timeout")
	h.contacts.err = boom

	_, err := h.svc.CreateSnapshot(context.Background(), models.SnapshotDaily, time.Time{}, time.Time{})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, h.snapshots.items, "nothing stored when aggregation fails")
}
