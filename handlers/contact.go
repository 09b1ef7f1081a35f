package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Gautam3767/product-catalog-backend/models"
)

// SubmitContact godoc
// @Summary Submit the public contact form
// @Tags contact
// @Accept json
// @Produce json
// @Param contact body models.ContactPayload true "Contact form"
// @Success 201 {object} Envelope "Stored submission"
// @Failure 400 {object} Envelope "Invalid input"
// @Router /contact [post]
func (h *Handler) SubmitContact(c *gin.Context) {
	var payload models.ContactPayload
	if !bindJSON(c, &payload) {
		return
	}
	ctx, cancel := h.dbContext(c)
	defer cancel()

	contact, err := h.Contacts.Submit(ctx, payload)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, Envelope{
		Success: true,
		Data:    contact,
		Message: "Thank you for contacting us. We will get back to you soon.",
	})
}

// contactFilter reads status, priority, service, isRead, search|q, from and to.
func contactFilter(c *gin.Context) (models.ContactFilter, error) {
	f := models.ContactFilter{
		Status:   models.ContactStatus(strings.TrimSpace(c.Query("status"))),
		Priority: models.Priority(strings.TrimSpace(c.Query("priority"))),
		Service:  models.Service(strings.TrimSpace(c.Query("service"))),
		Search:   searchQuery(c),
	}
	var err error
	if f.IsRead, err = queryBool(c, "isRead"); err != nil {
		return f, err
	}
	if f.From, err = queryTime(c, "from"); err != nil {
		return f, err
	}
	if f.To, err = queryTime(c, "to"); err != nil {
		return f, err
	}
	return f, nil
}

// ListContacts godoc
// @Summary List contact submissions (admin)
// @Description Newest first. Filters combine with AND.
// @Tags admin-contacts
// @Produce json
// @Param status query string false "new, replied, in_progress or closed"
// @Param priority query string false "low, medium or high"
// @Param service query string false "Service name"
// @Param isRead query bool false "Read state"
// @Param search query string false "Search text"
// @Param from query string false "Created at or after (RFC 3339 or YYYY-MM-DD)"
// @Param to query string false "Created before (RFC 3339 or YYYY-MM-DD)"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope "Invalid filter"
// @Router /admin/contacts [get]
func (h *Handler) ListContacts(c *gin.Context) {
	f, err := contactFilter(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ctx, cancel := h.dbContext(c)
	defer cancel()

	page := models.Page{Page: queryInt(c, "page"), Limit: queryInt(c, "limit")}
	items, pagination, err := h.Contacts.List(ctx, f, page)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, PageData[models.Contact]{Items: items, Pagination: pagination})
}

// GetContactStats godoc
// @Summary Inbox counters (admin)
// @Tags admin-contacts
// @Produce json
// @Success 200 {object} Envelope
// @Router /admin/contacts/stats [get]
func (h *Handler) GetContactStats(c *gin.Context) {
	ctx, cancel := h.dbContext(c)
	defer cancel()

	stats, err := h.Contacts.Stats(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, stats)
}

// GetContact godoc
// @Summary Open one submission (admin)
// @Description Opening a submission marks it as read.
// @Tags admin-contacts
// @Produce json
// @Param id path string true "Contact id"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope "Not found"
// @Router /admin/contacts/{id} [get]
func (h *Handler) GetContact(c *gin.Context) {
	id, found := idParam(c)
	if !found {
		return
	}
	ctx, cancel := h.dbContext(c)
	defer cancel()

	contact, err := h.Contacts.Get(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, contact)
}

// UpdateContact godoc
// @Summary Change status, priority or read state (admin)
// @Tags admin-contacts
// @Accept json
// @Produce json
// @Param id path string true "Contact id"
// @Param update body models.ContactUpdatePayload true "Fields to change"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope "Invalid input"
// @Failure 404 {object} Envelope "Not found"
// @Router /admin/contacts/{id} [patch]
func (h *Handler) UpdateContact(c *gin.Context) {
	id, found := idParam(c)
	if !found {
		return
	}
	var payload models.ContactUpdatePayload
	if !bindJSON(c, &payload) {
		return
	}
	ctx, cancel := h.dbContext(c)
	defer cancel()

	contact, err := h.Contacts.Update(ctx, id, payload)
	if err != nil {
		h.respondError(c, err)
		return
	}
	okMessage(c, "Contact updated", contact)
}

// DeleteContact godoc
// @Summary Delete one submission (admin)
// @Tags admin-contacts
// @Produce json
// @Param id path string true "Contact id"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope "Not found"
// @Router /admin/contacts/{id} [delete]
func (h *Handler) DeleteContact(c *gin.Context) {
	id, found := idParam(c)
	if !found {
		return
	}
	ctx, cancel := h.dbContext(c)
	defer cancel()

	if err := h.Contacts.Delete(ctx, id); err != nil {
		h.respondError(c, err)
		return
	}
	okMessage(c, "Contact deleted", nil)
}

// modified and deleted report UpdateMany / DeleteMany results.
type modified struct {
	ModifiedCount int64 `json:"modifiedCount"`
}

type deleted struct {
	DeletedCount int64 `json:"deletedCount"`
}

// MarkAllContactsRead godoc
// @Summary Mark every unread submission matching the filter as read (admin)
// @Tags admin-contacts
// @Produce json
// @Success 200 {object} Envelope "modifiedCount; 0 when nothing was unread"
// @Router /admin/contacts/mark-all-read [post]
func (h *Handler) MarkAllContactsRead(c *gin.Context) {
	f, err := contactFilter(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ctx, cancel := h.dbContext(c)
	defer cancel()

	n, err := h.Contacts.MarkAllRead(ctx, f)
	if err != nil {
		h.respondError(c, err)
		return
	}
	okMessage(c, "Contacts marked as read", modified{ModifiedCount: n})
}

// BulkUpdateContactStatus godoc
// @Summary Set the status of many submissions (admin)
// @Tags admin-contacts
// @Accept json
// @Produce json
// @Param bulk body models.BulkContactPayload true "Ids and status"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope "Invalid input"
// @Router /admin/contacts/bulk/status [post]
func (h *Handler) BulkUpdateContactStatus(c *gin.Context) {
	var payload models.BulkContactPayload
	if !bindJSON(c, &payload) {
		return
	}
	ctx, cancel := h.dbContext(c)
	defer cancel()

	n, err := h.Contacts.BulkUpdateStatus(ctx, payload)
	if err != nil {
		h.respondError(c, err)
		return
	}
	okMessage(c, "Contacts updated", modified{ModifiedCount: n})
}

// BulkDeleteContacts godoc
// @Summary Delete many submissions (admin)
// @Tags admin-contacts
// @Accept json
// @Produce json
// @Param bulk body models.BulkContactPayload true "Ids"
// @Success 200 {object} Envelope
// @Router /admin/contacts/bulk/delete [post]
func (h *Handler) BulkDeleteContacts(c *gin.Context) {
	var payload models.BulkContactPayload
	if !bindJSON(c, &payload) {
		return
	}
	ctx, cancel := h.dbContext(c)
	defer cancel()

	n, err := h.Contacts.BulkDelete(ctx, payload)
	if err != nil {
		h.respondError(c, err)
		return
	}
	okMessage(c, "Contacts deleted", deleted{DeletedCount: n})
}
