package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Gautam3767/product-catalog-backend/models"
)

func TestCatalogRepo_CRUD(t *testing.T) {
	repos := New(setupTestDB(t))
	ctx := context.Background()

	nav := &models.NavbarCategory{Name: "Networking Gear", Slug: "networking-gear", Order: 2, IsActive: true}
	require.NoError(t, repos.NavbarCategories.Create(ctx, nav))
	require.False(t, nav.ID.IsZero())
	assert.False(t, nav.CreatedAt.IsZero())

	got, err := repos.NavbarCategories.GetBySlug(ctx, "networking-gear")
	require.NoError(t, err)
	assert.Equal(t, nav.ID, got.ID)

	got.Name = "Networking Gear v2"
	got.Slug = "networking-gear-v2"
	require.NoError(t, repos.NavbarCategories.Replace(ctx, got))

	reloaded, err := repos.NavbarCategories.Get(ctx, nav.ID)
	require.NoError(t, err)
	assert.Equal(t, "networking-gear-v2", reloaded.Slug)

	require.NoError(t, repos.NavbarCategories.Delete(ctx, nav.ID))
	_, err = repos.NavbarCategories.Get(ctx, nav.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repos.NavbarCategories.Delete(ctx, nav.ID), ErrNotFound)
}

func TestCatalogRepo_DuplicateSlug(t *testing.T) {
	repos := New(setupTestDB(t))
	ctx := context.Background()
	navID := primitive.NewObjectID()

	require.NoError(t, repos.Categories.Create(ctx, &models.Category{Name: "Wi-Fi", Slug: "wi-fi", NavbarCategory: navID}))
	err := repos.Categories.Create(ctx, &models.Category{Name: "Wi Fi", Slug: "wi-fi", NavbarCategory: navID})
	assert.ErrorIs(t, err, ErrDuplicate)

	n, err := repos.Categories.Count(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCatalogRepo_ListOrderAndCount(t *testing.T) {
	repos := New(setupTestDB(t))
	ctx := context.Background()

	for i, name := range []string{"Cloud", "Wireless", "Security"} {
		require.NoError(t, repos.NavbarCategories.Create(ctx, &models.NavbarCategory{
			Name: name, Slug: name, Order: 3 - i, IsActive: i != 1,
		}))
	}

	list, err := repos.NavbarCategories.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Security", list[0].Name)
	assert.Equal(t, "Cloud", list[2].Name)

	active, err := repos.NavbarCategories.Count(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), active)
}

func TestContactRepo_MarkReadAndAggregates(t *testing.T) {
	repos := New(setupTestDB(t))
	ctx := context.Background()

	for _, svc := range []models.Service{models.ServiceOther, models.ServiceOther, models.ServicePartnership} {
		require.NoError(t, repos.Contacts.Create(ctx, &models.Contact{
			FullName: "Jane Doe", Email: "jane@example.com", Service: svc,
			Status: models.StatusNew, Priority: models.PriorityMedium, Source: "website",
		}))
	}

	unread := false
	read := true
	n, err := repos.Contacts.UpdateMany(ctx, models.ContactFilter{IsRead: &unread}, models.ContactUpdate{IsRead: &read})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = repos.Contacts.UpdateMany(ctx, models.ContactFilter{IsRead: &unread}, models.ContactUpdate{IsRead: &read})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n, "nothing left to mark")

	byService, err := repos.Contacts.CountByField(ctx, "service", models.ContactFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), byService[string(models.ServiceOther)])
	assert.Equal(t, int64(1), byService[string(models.ServicePartnership)])

	now := time.Now().UTC()
	daily, err := repos.Contacts.DailyCounts(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	var sum int64
	for _, c := range daily {
		sum += c
	}
	assert.Equal(t, int64(3), sum)
	assert.Contains(t, daily, now.Format("2006-01-02"))

	list, total, err := repos.Contacts.List(ctx, models.ContactFilter{Search: "JANE"}, models.Page{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 2)
}

func TestDashboardRepo_LatestBefore(t *testing.T) {
	repos := New(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, repos.Dashboards.Insert(ctx, &models.Dashboard{
			Type: models.SnapshotDaily, GeneratedAt: base.AddDate(0, 0, i),
			Overview: models.Overview{TotalContacts: int64(i)},
		}))
	}

	d, err := repos.Dashboards.LatestBefore(ctx, models.SnapshotDaily, base.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.Overview.TotalContacts)

	_, err = repos.Dashboards.LatestBefore(ctx, models.SnapshotWeekly, base.AddDate(0, 0, 5))
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := repos.Dashboards.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].Overview.TotalContacts)
}
