// Package persistence selects the storage adapter named in the configuration and
// exposes its repositories to the dependency graph.
package persistence

import (
	"log/slog"

	"agriconnect/config"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/errors"
	"agriconnect/internal/infra/persistence/memory"
	"agriconnect/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Result carries every repository of the selected adapter.
type Result struct {
	fx.Out

	TxManager  repository.TransactionManager
	Users      repository.UserRepository
	Farmers    repository.FarmerRepository
	Products   repository.ProductRepository
	Orders     repository.OrderRepository
	Reviews    repository.ReviewRepository
	Locations  repository.LocationRepository
	Categories repository.CategoryRepository
	Insights   repository.InsightRepository
}

// New builds the repositories for cfg.Storage.Driver.
func New(params Params) (Result, error) {
	switch params.Config.Storage.Driver {
	case DriverMemory, "":
		store := memory.NewStore()
		params.Logger.Info("Using in-memory storage")

		return newResult(memory.NewTransactionManager(store), store.Repositories()), nil
	case DriverPostgres:
		if params.Config.Postgres == nil {
			return Result{}, errors.New("postgres driver selected without a postgres section")
		}

		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return Result{}, err
		}

		return newResult(postgres.NewTransactionManager(db), postgres.NewRepositoryFactory(db)), nil
	default:
		return Result{}, errors.Errorf("unknown storage driver %q", params.Config.Storage.Driver)
	}
}

func newResult(txManager repository.TransactionManager, factory repository.RepositoryFactory) Result {
	return Result{
		TxManager:  txManager,
		Users:      factory.NewUserRepository(),
		Farmers:    factory.NewFarmerRepository(),
		Products:   factory.NewProductRepository(),
		Orders:     factory.NewOrderRepository(),
		Reviews:    factory.NewReviewRepository(),
		Locations:  factory.NewLocationRepository(),
		Categories: factory.NewCategoryRepository(),
		Insights:   factory.NewInsightRepository(),
	}
}
