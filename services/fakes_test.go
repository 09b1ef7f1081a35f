package services

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Gautam3767/product-catalog-backend/models"
	"github.com/Gautam3767/product-catalog-backend/repository"
)

func nullLogger() logrus.FieldLogger {
	l, _ := test.NewNullLogger()
	return l
}

// memStore is an in-memory CatalogStore with the same unique-slug rule the
// Mongo indexes enforce.
type memStore[T any, PT interface {
	*T
	models.Entity
}] struct {
	mu   sync.Mutex
	docs []T
	err  error // returned by every call when set
}

func newMemStore[T any, PT interface {
	*T
	models.Entity
}](docs ...T) *memStore[T, PT] {
	return &memStore[T, PT]{docs: append([]T(nil), docs...)}
}

func (m *memStore[T, PT]) slugTaken(slug string, except primitive.ObjectID) bool {
	for i := range m.docs {
		d := PT(&m.docs[i])
		if d.GetSlug() == slug && d.GetID() != except {
			return true
		}
	}
	return false
}

func (m *memStore[T, PT]) Create(_ context.Context, doc *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	d := PT(doc)
	if m.slugTaken(d.GetSlug(), primitive.NilObjectID) {
		return repository.ErrDuplicate
	}
	if d.GetID().IsZero() {
		d.SetID(primitive.NewObjectID())
	}
	m.docs = append(m.docs, *doc)
	return nil
}

func (m *memStore[T, PT]) Replace(_ context.Context, doc *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	d := PT(doc)
	for i := range m.docs {
		if PT(&m.docs[i]).GetID() != d.GetID() {
			continue
		}
		if m.slugTaken(d.GetSlug(), d.GetID()) {
			return repository.ErrDuplicate
		}
		m.docs[i] = *doc
		return nil
	}
	return repository.ErrNotFound
}

func (m *memStore[T, PT]) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for i := range m.docs {
		if PT(&m.docs[i]).GetID() == id {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore[T, PT]) find(match func(PT) bool) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.docs {
		if match(PT(&m.docs[i])) {
			doc := m.docs[i]
			return &doc, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore[T, PT]) Get(_ context.Context, id primitive.ObjectID) (*T, error) {
	return m.find(func(d PT) bool { return d.GetID() == id })
}

func (m *memStore[T, PT]) GetBySlug(_ context.Context, slug string) (*T, error) {
	return m.find(func(d PT) bool { return d.GetSlug() == slug })
}

func (m *memStore[T, PT]) List(_ context.Context, limit int64) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	n := len(m.docs)
	if limit > 0 && int64(n) > limit {
		n = int(limit)
	}
	return append([]T(nil), m.docs[:n]...), nil
}

func (m *memStore[T, PT]) Count(_ context.Context, activeOnly bool) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for i := range m.docs {
		if !activeOnly || PT(&m.docs[i]).GetActive() {
			n++
		}
	}
	return n, nil
}

func (m *memStore[T, PT]) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

type catalogStores struct {
	navbars       *memStore[models.NavbarCategory, *models.NavbarCategory]
	categories    *memStore[models.Category, *models.Category]
	subcategories *memStore[models.SubCategory, *models.SubCategory]
	products      *memStore[models.Product, *models.Product]
}

// newCatalogStores seeds in-memory stores from f; a nil f gives empty stores.
func newCatalogStores(f *catalogFixture) *catalogStores {
	if f == nil {
		f = &catalogFixture{}
	}
	return &catalogStores{
		navbars:       newMemStore[models.NavbarCategory](f.navbars...),
		categories:    newMemStore[models.Category](f.categories...),
		subcategories: newMemStore[models.SubCategory](f.subcategories...),
		products:      newMemStore[models.Product](f.products...),
	}
}

func (s *catalogStores) service() *CatalogService {
	return NewCatalogService(s.navbars, s.categories, s.subcategories, s.products, nullLogger())
}
