package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SnapshotType names the period a dashboard snapshot covers.
type SnapshotType string

const (
	SnapshotDaily   SnapshotType = "daily"
	SnapshotWeekly  SnapshotType = "weekly"
	SnapshotMonthly SnapshotType = "monthly"
	SnapshotCustom  SnapshotType = "custom"
)

// Period returns the length of the period, or zero for custom snapshots.
func (t SnapshotType) Period() time.Duration {
	switch t {
	case SnapshotDaily:
		return 24 * time.Hour
	case SnapshotWeekly:
		return 7 * 24 * time.Hour
	case SnapshotMonthly:
		return 30 * 24 * time.Hour
	}
	return 0
}

func (t SnapshotType) Valid() bool {
	return t == SnapshotCustom || t.Period() > 0
}

// Overview holds entity totals.
type Overview struct {
	TotalContacts         int64 `bson:"totalContacts" json:"totalContacts"`
	UnreadContacts        int64 `bson:"unreadContacts" json:"unreadContacts"`
	NewContactsInPeriod   int64 `bson:"newContactsInPeriod" json:"newContactsInPeriod"`
	TotalProducts         int64 `bson:"totalProducts" json:"totalProducts"`
	ActiveProducts        int64 `bson:"activeProducts" json:"activeProducts"`
	TotalNavbarCategories int64 `bson:"totalNavbarCategories" json:"totalNavbarCategories"`
	TotalCategories       int64 `bson:"totalCategories" json:"totalCategories"`
	ActiveCategories      int64 `bson:"activeCategories" json:"activeCategories"`
	TotalSubCategories    int64 `bson:"totalSubCategories" json:"totalSubCategories"`
}

// ContactBreakdown counts contacts per status.
type ContactBreakdown struct {
	New        int64 `bson:"new" json:"new"`
	Replied    int64 `bson:"replied" json:"replied"`
	InProgress int64 `bson:"inProgress" json:"inProgress"`
	Closed     int64 `bson:"closed" json:"closed"`
}

// Growth holds percentage changes against the previous snapshot.
type Growth struct {
	Contacts   float64 `bson:"contacts" json:"contacts"`
	Products   float64 `bson:"products" json:"products"`
	Categories float64 `bson:"categories" json:"categories"`
	// BaselineID is the snapshot compared against; nil when no baseline existed.
	BaselineID *primitive.ObjectID `bson:"baselineId,omitempty" json:"baselineId,omitempty"`
}

// ServiceCount is one slice of the service distribution chart.
type ServiceCount struct {
	Service Service `bson:"service" json:"service"`
	Count   int64   `bson:"count" json:"count"`
}

// Trend is the last 7 calendar days of contact submissions, oldest first.
type Trend struct {
	Labels []string `bson:"labels" json:"labels"`
	Counts []int64  `bson:"counts" json:"counts"`
}

// CategoryBreakdown summarises the catalog under one navbar category.
type CategoryBreakdown struct {
	NavbarCategoryID primitive.ObjectID `bson:"navbarCategoryId" json:"navbarCategoryId"`
	Name             string             `bson:"name" json:"name"`
	Categories       int64              `bson:"categories" json:"categories"`
	Products         int64              `bson:"products" json:"products"`
}

// Dashboard is a point-in-time aggregation, created on demand.
type Dashboard struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	Overview            Overview            `bson:"overview" json:"overview"`
	Contacts            ContactBreakdown    `bson:"contacts" json:"contacts"`
	Growth              Growth              `bson:"growth" json:"growth"`
	ServiceDistribution []ServiceCount      `bson:"serviceDistribution" json:"serviceDistribution"`
	WeeklyTrend         Trend               `bson:"weeklyTrend" json:"weeklyTrend"`
	Categories          []CategoryBreakdown `bson:"categories" json:"categories"`
	CompletionRate      float64             `bson:"completionRate" json:"completionRate"`
	AvgResponseTime     float64             `bson:"avgResponseTime" json:"avgResponseTime"` // hours
	GeneratedAt         time.Time           `bson:"generatedAt" json:"generatedAt"`
	PeriodStart         time.Time           `bson:"periodStart" json:"periodStart"`
	PeriodEnd           time.Time           `bson:"periodEnd" json:"periodEnd"`
	Type                SnapshotType        `bson:"type" json:"type"`
}
