// Package memory implements the repository interfaces on top of process-local maps.
// It backs tests and single-process development runs and honours the same contracts as the
// PostgreSQL implementation, including transactional rollback.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"

	"github.com/google/uuid"
)

// tables holds every record by value. Insertion order is tracked separately because
// listings are defined in creation order.
type tables struct {
	users     map[uuid.UUID]entity.User
	userOrder []uuid.UUID

	farmers     map[uuid.UUID]entity.Farmer
	farmerOrder []uuid.UUID

	products     map[uuid.UUID]entity.Product
	productOrder []uuid.UUID

	orders     map[uuid.UUID]entity.Order
	orderItems map[uuid.UUID][]entity.OrderItem
	orderOrder []uuid.UUID

	reviews     map[uuid.UUID]entity.Review
	reviewOrder []uuid.UUID

	provinces     map[string]entity.Province
	provinceOrder []string
	districts     map[string]entity.District
	districtOrder []string
	sectors       map[string]entity.Sector
	sectorOrder   []string

	categories    map[string]entity.ProductCategory
	categoryOrder []string

	predictions     []entity.DemandPrediction
	recommendations []entity.Recommendation
}

func newTables() *tables {
	return &tables{
		users:      make(map[uuid.UUID]entity.User),
		farmers:    make(map[uuid.UUID]entity.Farmer),
		products:   make(map[uuid.UUID]entity.Product),
		orders:     make(map[uuid.UUID]entity.Order),
		orderItems: make(map[uuid.UUID][]entity.OrderItem),
		reviews:    make(map[uuid.UUID]entity.Review),
		provinces:  make(map[string]entity.Province),
		districts:  make(map[string]entity.District),
		sectors:    make(map[string]entity.Sector),
		categories: make(map[string]entity.ProductCategory),
	}
}

// clone copies the maps and order slices. Records are values, and stored slices are
// never modified in place, so the copy is a full snapshot.
func (t *tables) clone() *tables {
	return &tables{
		users:           maps.Clone(t.users),
		userOrder:       slices.Clone(t.userOrder),
		farmers:         maps.Clone(t.farmers),
		farmerOrder:     slices.Clone(t.farmerOrder),
		products:        maps.Clone(t.products),
		productOrder:    slices.Clone(t.productOrder),
		orders:          maps.Clone(t.orders),
		orderItems:      maps.Clone(t.orderItems),
		orderOrder:      slices.Clone(t.orderOrder),
		reviews:         maps.Clone(t.reviews),
		reviewOrder:     slices.Clone(t.reviewOrder),
		provinces:       maps.Clone(t.provinces),
		provinceOrder:   slices.Clone(t.provinceOrder),
		districts:       maps.Clone(t.districts),
		districtOrder:   slices.Clone(t.districtOrder),
		sectors:         maps.Clone(t.sectors),
		sectorOrder:     slices.Clone(t.sectorOrder),
		categories:      maps.Clone(t.categories),
		categoryOrder:   slices.Clone(t.categoryOrder),
		predictions:     slices.Clone(t.predictions),
		recommendations: slices.Clone(t.recommendations),
	}
}

// access runs a callback against the tables with the right locking in place.
type access interface {
	read(fn func(t *tables) error) error
	write(fn func(t *tables) error) error
	now() time.Time
}

// Store is the shared in-memory database. A single RWMutex serializes writers,
// which also serializes concurrent read-modify-write cycles on the same entity.
type Store struct {
	mu    sync.RWMutex
	data  *tables
	clock func() time.Time
}

// Option customizes a Store
type Option func(*Store)

// WithClock overrides the time source used for timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		data:  newTables(),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Store) read(fn func(t *tables) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(s.data)
}

func (s *Store) write(fn func(t *tables) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.data)
}

func (s *Store) now() time.Time {
	return s.clock().UTC()
}

// txAccess is used while a transaction holds the store's write lock.
type txAccess struct {
	store *Store
}

func (a *txAccess) read(fn func(t *tables) error) error {
	return fn(a.store.data)
}

func (a *txAccess) write(fn func(t *tables) error) error {
	return fn(a.store.data)
}

func (a *txAccess) now() time.Time {
	return a.store.now()
}

// transactionManager implements repository.TransactionManager for the store.
type transactionManager struct {
	store *Store
}

// NewTransactionManager returns a TransactionManager whose transactions hold the store's
// write lock for their whole duration and restore a snapshot on error or panic.
// Repositories obtained outside the factory must not be used inside fn.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

// Execute runs fn atomically.
func (tm *transactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tm.store.mu.Lock()
	defer tm.store.mu.Unlock()

	snapshot := tm.store.data.clone()
	defer func() {
		if r := recover(); r != nil {
			tm.store.data = snapshot
			panic(r)
		}
	}()

	if err := fn(&repositoryFactory{acc: &txAccess{store: tm.store}}); err != nil {
		tm.store.data = snapshot

		return err
	}

	return nil
}

// repositoryFactory hands out repositories bound to one access mode.
type repositoryFactory struct {
	acc access
}

func (f *repositoryFactory) NewUserRepository() repository.UserRepository {
	return &userRepository{acc: f.acc}
}

func (f *repositoryFactory) NewFarmerRepository() repository.FarmerRepository {
	return &farmerRepository{acc: f.acc}
}

func (f *repositoryFactory) NewProductRepository() repository.ProductRepository {
	return &productRepository{acc: f.acc}
}

func (f *repositoryFactory) NewOrderRepository() repository.OrderRepository {
	return &orderRepository{acc: f.acc}
}

func (f *repositoryFactory) NewReviewRepository() repository.ReviewRepository {
	return &reviewRepository{acc: f.acc}
}

func (f *repositoryFactory) NewLocationRepository() repository.LocationRepository {
	return &locationRepository{acc: f.acc}
}

func (f *repositoryFactory) NewCategoryRepository() repository.CategoryRepository {
	return &categoryRepository{acc: f.acc}
}

func (f *repositoryFactory) NewInsightRepository() repository.InsightRepository {
	return &insightRepository{acc: f.acc}
}

// Repositories returns a factory of non-transactional repositories backed by the store.
func (s *Store) Repositories() repository.RepositoryFactory {
	return &repositoryFactory{acc: s}
}

// --- Join helpers (caller holds the lock) ---

func (t *tables) userView(id uuid.UUID) *entity.User {
	u, ok := t.users[id]
	if !ok {
		return nil
	}

	return &u
}

func (t *tables) farmerView(f entity.Farmer) *entity.Farmer {
	f.User = t.userView(f.UserID)

	return &f
}

func (t *tables) productView(p entity.Product) *entity.Product {
	if f, ok := t.farmers[p.FarmerID]; ok {
		p.Farmer = t.farmerView(f)
	}

	return &p
}

func (t *tables) orderView(o entity.Order) *entity.Order {
	items := t.orderItems[o.ID]
	o.Items = make([]*entity.OrderItem, 0, len(items))
	for i := range items {
		item := items[i]
		o.Items = append(o.Items, &item)
	}

	return &o
}
