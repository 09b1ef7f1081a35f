package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gautam3767/product-catalog-backend/models"
)

// snapshotQuery reads type (default weekly), from and to.
func snapshotQuery(c *gin.Context) (t models.SnapshotType, from, to time.Time, err error) {
	t = models.SnapshotType(c.DefaultQuery("type", string(models.SnapshotWeekly)))
	if from, err = queryTime(c, "from"); err != nil {
		return
	}
	to, err = queryTime(c, "to")
	return
}

// GetDashboard godoc
// @Summary Live dashboard (admin)
// @Description Aggregates the catalog and inbox for the period without storing the result.
// @Tags admin-dashboard
// @Produce json
// @Param type query string false "daily, weekly (default), monthly or custom"
// @Param from query string false "Custom period start"
// @Param to query string false "Period end (defaults to now)"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope "Invalid period"
// @Router /admin/dashboard [get]
func (h *Handler) GetDashboard(c *gin.Context) {
	t, from, to, err := snapshotQuery(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ctx, cancel := h.dbContext(c)
	defer cancel()

	d, err := h.Dashboard.Compute(ctx, t, from, to)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, d)
}

// CreateSnapshot godoc
// @Summary Compute and store a dashboard snapshot (admin)
// @Description Growth is measured against the latest earlier snapshot of the same type.
// @Tags admin-dashboard
// @Produce json
// @Param type query string false "daily, weekly (default), monthly or custom"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope "Invalid period"
// @Router /admin/dashboard/snapshots [post]
func (h *Handler) CreateSnapshot(c *gin.Context) {
	t, from, to, err := snapshotQuery(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ctx, cancel := h.dbContext(c)
	defer cancel()

	d, err := h.Dashboard.CreateSnapshot(ctx, t, from, to)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: d, Message: "Snapshot created"})
}

// GetLatestSnapshot godoc
// @Summary Most recent stored snapshot (admin)
// @Tags admin-dashboard
// @Produce json
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope "No snapshot yet"
// @Router /admin/dashboard/snapshots/latest [get]
func (h *Handler) GetLatestSnapshot(c *gin.Context) {
	ctx, cancel := h.dbContext(c)
	defer cancel()

	d, err := h.Dashboard.Latest(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, d)
}

// ListSnapshots godoc
// @Summary Stored snapshots, newest first (admin)
// @Tags admin-dashboard
// @Produce json
// @Param limit query int false "At most this many (default 20, max 100)"
// @Success 200 {object} Envelope
// @Router /admin/dashboard/snapshots [get]
func (h *Handler) ListSnapshots(c *gin.Context) {
	ctx, cancel := h.dbContext(c)
	defer cancel()

	items, err := h.Dashboard.List(ctx, int64(queryInt(c, "limit")))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, items)
}
