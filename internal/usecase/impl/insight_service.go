package impl

import (
	"context"
	"log/slog"

	"agriconnect/config"
	deliverycontext "agriconnect/internal/delivery/context"
	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/domain/service"
	"agriconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// insightService implements the InsightUsecase interface.
type insightService struct {
	txManager    repository.TransactionManager
	insightRepo  repository.InsightRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
	predictor    service.DemandPredictor
	recommender  service.Recommender
	limit        int
	logger       *slog.Logger
}

// InsightServiceParams holds dependencies for InsightService, injected by Fx.
type InsightServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	InsightRepo  repository.InsightRepository
	CategoryRepo repository.CategoryRepository
	LocationRepo repository.LocationRepository
	Predictor    service.DemandPredictor
	Recommender  service.Recommender
	Config       *config.Config
	Logger       *slog.Logger
}

// NewInsightService creates a new insight service instance
func NewInsightService(params InsightServiceParams) usecase.InsightUsecase {
	limit := 0
	if params.Config != nil && params.Config.Insight != nil {
		limit = params.Config.Insight.RecommendationLimit
	}

	return &insightService{
		txManager:    params.TxManager,
		insightRepo:  params.InsightRepo,
		categoryRepo: params.CategoryRepo,
		locationRepo: params.LocationRepo,
		predictor:    params.Predictor,
		recommender:  params.Recommender,
		limit:        limit,
		logger:       params.Logger,
	}
}

func (srv *insightService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// DemandPredictions returns the cached predictions for the pair, asking the predictor on a miss.
func (srv *insightService) DemandPredictions(ctx context.Context, categoryID, provinceID string) ([]*entity.DemandPrediction, error) {
	if categoryID == "" || provinceID == "" {
		return nil, domainerrors.NewValidationError("categoryId and provinceId are required")
	}
	if _, err := srv.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category")
	}
	if _, err := srv.locationRepo.FindProvince(ctx, provinceID); err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			return nil, domainerrors.ErrLocationNotFound.WithDetails("unknown province " + provinceID)
		}

		return nil, errors.Wrap(err, "failed to find province")
	}

	cached, err := srv.insightRepo.FindDemandPredictions(ctx, categoryID, provinceID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load demand predictions")
	}
	if len(cached) > 0 {
		return cached, nil
	}

	prediction, err := srv.predictor.PredictDemand(ctx, categoryID, provinceID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to predict demand")
	}
	if err := srv.insightRepo.SaveDemandPrediction(ctx, prediction); err != nil {
		return nil, errors.Wrap(err, "failed to store demand prediction")
	}

	srv.log(ctx).Debug("Generated demand prediction",
		slog.String("categoryID", categoryID),
		slog.String("provinceID", provinceID),
		slog.String("model", prediction.Model),
	)

	return []*entity.DemandPrediction{prediction}, nil
}

// Recommendations returns the user's cached recommendations, generating them on a miss.
func (srv *insightService) Recommendations(ctx context.Context, userID uuid.UUID) ([]*entity.Recommendation, error) {
	cached, err := srv.insightRepo.FindRecommendations(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load recommendations")
	}
	if len(cached) > 0 {
		return cached, nil
	}

	return srv.generate(ctx, userID, false)
}

func (srv *insightService) RefreshRecommendations(ctx context.Context, userID uuid.UUID) ([]*entity.Recommendation, error) {
	return srv.generate(ctx, userID, true)
}

func (srv *insightService) generate(ctx context.Context, userID uuid.UUID, replace bool) ([]*entity.Recommendation, error) {
	recommendations, err := srv.recommender.Recommend(ctx, userID, srv.limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate recommendations")
	}

	var stored []*entity.Recommendation
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		insightRepo := repoFactory.NewInsightRepository()
		if err := insightRepo.LockRecommendations(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to lock recommendations")
		}

		if replace {
			if err := insightRepo.DeleteRecommendations(ctx, userID); err != nil {
				return errors.Wrap(err, "failed to drop recommendations")
			}
		} else {
			// Another request may have filled the cache since the miss.
			existing, err := insightRepo.FindRecommendations(ctx, userID)
			if err != nil {
				return errors.Wrap(err, "failed to reload recommendations")
			}
			if len(existing) > 0 {
				stored = existing

				return nil
			}
		}
		for _, recommendation := range recommendations {
			if err := insightRepo.SaveRecommendation(ctx, recommendation); err != nil {
				return errors.Wrap(err, "failed to store recommendation")
			}
		}

		found, err := insightRepo.FindRecommendations(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to reload recommendations")
		}
		stored = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Generated recommendations", slog.Any("userID", userID), slog.Int("count", len(stored)))

	return stored, nil
}
