package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/Gautam3767/product-catalog-backend/models"
	"github.com/Gautam3767/product-catalog-backend/repository"
)

// ContactStore is the persistence ContactService and the dashboard need.
type ContactStore interface {
	Create(ctx context.Context, c *models.Contact) error
	Get(ctx context.Context, id primitive.ObjectID) (*models.Contact, error)
	Update(ctx context.Context, id primitive.ObjectID, u models.ContactUpdate) (*models.Contact, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, f models.ContactFilter, p models.Page) ([]models.Contact, int64, error)
	Count(ctx context.Context, f models.ContactFilter) (int64, error)
	UpdateMany(ctx context.Context, f models.ContactFilter, u models.ContactUpdate) (int64, error)
	DeleteMany(ctx context.Context, f models.ContactFilter) (int64, error)
	CountByField(ctx context.Context, field string, f models.ContactFilter) (map[string]int64, error)
	DailyCounts(ctx context.Context, from, to time.Time) (map[string]int64, error)
}

type ContactService struct {
	store    ContactStore
	notifier Notifier
	log      logrus.FieldLogger
}

func NewContactService(store ContactStore, notifier Notifier, log logrus.FieldLogger) *ContactService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ContactService{store: store, notifier: notifier, log: log.WithField("service", "contact")}
}

func contactStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	default:
		return fmt.Errorf("contact store: %w", err)
	}
}

// Submit stores a public contact form submission with status new, priority
// medium and isRead false. The inbox notification is best effort.
func (s *ContactService) Submit(ctx context.Context, in models.ContactPayload) (*models.Contact, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	service := models.Service(in.Service)
	if !service.Valid() {
		return nil, validationError("service must be one of: %s", joinServices())
	}

	source := strings.TrimSpace(in.Source)
	if source == "" {
		source = models.DefaultContactSource
	}
	c := &models.Contact{
		FullName: strings.TrimSpace(in.FullName),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:    strings.TrimSpace(in.Phone),
		Company:  strings.TrimSpace(in.Company),
		Service:  service,
		Subject:  strings.TrimSpace(in.Subject),
		Message:  strings.TrimSpace(in.Message),
		Status:   models.StatusNew,
		Priority: models.PriorityMedium,
		Source:   source,
		IsRead:   false,
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, contactStoreError(err)
	}

	entry := s.log.WithFields(logrus.Fields{"contact_id": c.ID.Hex(), "service": c.Service})
	entry.Info("Contact submitted")
	if err := s.notifier.NotifyNewContact(ctx, *c); err != nil {
		entry.WithError(err).Warn("Contact notification failed")
	}
	return c, nil
}

func joinServices() string {
	names := make([]string, len(models.Services))
	for i, sv := range models.Services {
		names[i] = string(sv)
	}
	return strings.Join(names, ", ")
}

// checkFilter rejects enum values the store would silently match nothing for.
func checkFilter(f models.ContactFilter) error {
	if f.Status != "" && !f.Status.Valid() {
		return validationError("unknown status %q", f.Status)
	}
	if f.Priority != "" && !f.Priority.Valid() {
		return validationError("unknown priority %q", f.Priority)
	}
	if f.Service != "" && !f.Service.Valid() {
		return validationError("unknown service %q", f.Service)
	}
	if !f.From.IsZero() && !f.To.IsZero() && !f.From.Before(f.To) {
		return validationError("from must be before to")
	}
	return nil
}

// List returns one page of contacts, newest first.
func (s *ContactService) List(ctx context.Context, f models.ContactFilter, p models.Page) ([]models.Contact, models.Pagination, error) {
	if err := checkFilter(f); err != nil {
		return nil, models.Pagination{}, err
	}
	p = CatalogFilter{Page: p.Page, Limit: p.Limit}.page()
	items, total, err := s.store.List(ctx, f, p)
	if err != nil {
		return nil, models.Pagination{}, contactStoreError(err)
	}
	return items, models.NewPagination(p, total), nil
}

// Get returns a contact and marks it as read.
func (s *ContactService) Get(ctx context.Context, id primitive.ObjectID) (*models.Contact, error) {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, contactStoreError(err)
	}
	if c.IsRead {
		return c, nil
	}
	read := true
	c, err = s.store.Update(ctx, id, models.ContactUpdate{IsRead: &read})
	return c, contactStoreError(err)
}

// Update changes status, priority or the read flag of one contact.
func (s *ContactService) Update(ctx context.Context, id primitive.ObjectID, in models.ContactUpdatePayload) (*models.Contact, error) {
	var u models.ContactUpdate
	if in.Status != nil {
		st := models.ContactStatus(*in.Status)
		if !st.Valid() {
			return nil, validationError("unknown status %q", *in.Status)
		}
		u.Status = &st
	}
	if in.Priority != nil {
		pr := models.Priority(*in.Priority)
		if !pr.Valid() {
			return nil, validationError("unknown priority %q", *in.Priority)
		}
		u.Priority = &pr
	}
	u.IsRead = in.IsRead
	if u.Empty() {
		return nil, validationError("nothing to update")
	}

	c, err := s.store.Update(ctx, id, u)
	if err != nil {
		return nil, contactStoreError(err)
	}
	s.log.WithField("contact_id", id.Hex()).Info("Contact updated")
	return c, nil
}

func (s *ContactService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return contactStoreError(err)
	}
	s.log.WithField("contact_id", id.Hex()).Info("Contact deleted")
	return nil
}

// MarkAllRead marks every unread contact matching f as read in one
// multi-document update and returns how many changed. Zero is not an error.
func (s *ContactService) MarkAllRead(ctx context.Context, f models.ContactFilter) (int64, error) {
	if err := checkFilter(f); err != nil {
		return 0, err
	}
	unread, read := false, true
	f.IsRead = &unread
	n, err := s.store.UpdateMany(ctx, f, models.ContactUpdate{IsRead: &read})
	if err != nil {
		return 0, contactStoreError(err)
	}
	s.log.WithField("modified", n).Info("Contacts marked as read")
	return n, nil
}

func parseIDs(hex []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hex))
	for _, h := range hex {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, validationError("invalid id %q", h)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// BulkUpdateStatus sets one status on every listed contact.
func (s *ContactService) BulkUpdateStatus(ctx context.Context, in models.BulkContactPayload) (int64, error) {
	if err := validateStruct(in); err != nil {
		return 0, err
	}
	status := models.ContactStatus(in.Status)
	if !status.Valid() {
		return 0, validationError("unknown status %q", in.Status)
	}
	ids, err := parseIDs(in.IDs)
	if err != nil {
		return 0, err
	}
	n, err := s.store.UpdateMany(ctx, models.ContactFilter{IDs: ids}, models.ContactUpdate{Status: &status})
	if err != nil {
		return 0, contactStoreError(err)
	}
	s.log.WithFields(logrus.Fields{"status": status, "modified": n}).Info("Contacts status updated")
	return n, nil
}

// BulkDelete removes every listed contact.
func (s *ContactService) BulkDelete(ctx context.Context, in models.BulkContactPayload) (int64, error) {
	if err := validateStruct(in); err != nil {
		return 0, err
	}
	ids, err := parseIDs(in.IDs)
	if err != nil {
		return 0, err
	}
	n, err := s.store.DeleteMany(ctx, models.ContactFilter{IDs: ids})
	if err != nil {
		return 0, contactStoreError(err)
	}
	s.log.WithField("deleted", n).Info("Contacts deleted")
	return n, nil
}

// Stats counts contacts overall, unread, and per status, service and priority.
func (s *ContactService) Stats(ctx context.Context) (*models.ContactStats, error) {
	var (
		stats                        models.ContactStats
		byStatus, byService, byPrior map[string]int64
	)
	unread := false

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.Total, err = s.store.Count(gctx, models.ContactFilter{})
		return err
	})
	g.Go(func() (err error) {
		stats.Unread, err = s.store.Count(gctx, models.ContactFilter{IsRead: &unread})
		return err
	})
	g.Go(func() (err error) {
		byStatus, err = s.store.CountByField(gctx, "status", models.ContactFilter{})
		return err
	})
	g.Go(func() (err error) {
		byService, err = s.store.CountByField(gctx, "service", models.ContactFilter{})
		return err
	})
	g.Go(func() (err error) {
		byPrior, err = s.store.CountByField(gctx, "priority", models.ContactFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, contactStoreError(err)
	}

	stats.ByStatus = make(map[models.ContactStatus]int64, len(models.ContactStatuses))
	for _, st := range models.ContactStatuses {
		stats.ByStatus[st] = byStatus[string(st)]
	}
	stats.ByService = make(map[models.Service]int64, len(models.Services))
	for _, sv := range models.Services {
		stats.ByService[sv] = byService[string(sv)]
	}
	stats.ByPriority = map[models.Priority]int64{
		models.PriorityLow:    byPrior[string(models.PriorityLow)],
		models.PriorityMedium: byPrior[string(models.PriorityMedium)],
		models.PriorityHigh:   byPrior[string(models.PriorityHigh)],
	}
	return &stats, nil
}
