// Package seed loads the location hierarchy, product categories and demo accounts
// shipped with the service into the configured store.
package seed

import (
	"context"
	_ "embed"
	"log/slog"
	"reflect"

	"agriconnect/config"
	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/lifecycle"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/domain/service"
	"agriconnect/internal/errors"

	"github.com/go-viper/mapstructure/v2"
	"github.com/google/uuid"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

//go:embed reference.yaml
var referenceYAML []byte

//go:embed samples.yaml
var samplesYAML []byte

//nolint:gochecknoglobals
var sampleNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://agriconnect.rw/seed"))

// SampleID returns the stable id of a sample record, so reseeding finds existing rows.
func SampleID(key string) uuid.UUID {
	return uuid.NewSHA1(sampleNamespace, []byte(key))
}

// Reference is the location hierarchy and category list.
type Reference struct {
	Provinces  []entity.Province        `mapstructure:"provinces"`
	Districts  []entity.District        `mapstructure:"districts"`
	Sectors    []entity.Sector          `mapstructure:"sectors"`
	Categories []entity.ProductCategory `mapstructure:"categories"`
}

// Samples are demo users, farmer profiles and products.
type Samples struct {
	Password string          `mapstructure:"password"`
	Users    []sampleUser    `mapstructure:"users"`
	Farmers  []sampleFarmer  `mapstructure:"farmers"`
	Products []sampleProduct `mapstructure:"products"`
}

type sampleUser struct {
	Key             string      `mapstructure:"key"`
	Email           string      `mapstructure:"email"`
	FirstName       string      `mapstructure:"firstName"`
	LastName        string      `mapstructure:"lastName"`
	Role            entity.Role `mapstructure:"role"`
	ProfileImageURL string      `mapstructure:"profileImageUrl"`
}

type sampleFarmer struct {
	Key          string          `mapstructure:"key"`
	User         string          `mapstructure:"user"`
	FarmName     string          `mapstructure:"farmName"`
	Description  string          `mapstructure:"description"`
	ProvinceID   string          `mapstructure:"provinceId"`
	DistrictID   string          `mapstructure:"districtId"`
	SectorID     string          `mapstructure:"sectorId"`
	Latitude     float64         `mapstructure:"latitude"`
	Longitude    float64         `mapstructure:"longitude"`
	Phone        string          `mapstructure:"phone"`
	Rating       decimal.Decimal `mapstructure:"rating"`
	TotalRatings int             `mapstructure:"totalRatings"`
}

type sampleProduct struct {
	Key               string          `mapstructure:"key"`
	Farmer            string          `mapstructure:"farmer"`
	CategoryID        string          `mapstructure:"categoryId"`
	Name              string          `mapstructure:"name"`
	NameKinyarwanda   string          `mapstructure:"nameKinyarwanda"`
	Description       string          `mapstructure:"description"`
	Unit              string          `mapstructure:"unit"`
	PricePerUnit      decimal.Decimal `mapstructure:"pricePerUnit"`
	AvailableQuantity int             `mapstructure:"availableQuantity"`
	MinOrderQuantity  int             `mapstructure:"minOrderQuantity"`
	ImageURL          string          `mapstructure:"imageUrl"`
}

// LoadReference parses the embedded reference data.
func LoadReference() (*Reference, error) {
	ref := new(Reference)
	if err := decodeYAML(referenceYAML, ref); err != nil {
		return nil, errors.Wrap(err, "failed to load reference data")
	}

	return ref, nil
}

// LoadSamples parses the embedded sample data.
func LoadSamples() (*Samples, error) {
	samples := new(Samples)
	if err := decodeYAML(samplesYAML, samples); err != nil {
		return nil, errors.Wrap(err, "failed to load sample data")
	}

	return samples, nil
}

func decodeYAML(raw []byte, out any) error {
	parsed, err := yaml.Parser().Unmarshal(raw)
	if err != nil {
		return errors.WithStack(err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       stringToDecimalHook,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(decoder.Decode(parsed))
}

func stringToDecimalHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeFor[decimal.Decimal]() {
		return data, nil
	}

	switch from.Kind() {
	case reflect.String:
		return decimal.NewFromString(data.(string))
	case reflect.Float64:
		return decimal.NewFromFloat(data.(float64)), nil
	case reflect.Int:
		return decimal.NewFromInt(int64(data.(int))), nil
	default:
		return data, nil
	}
}

// Seeder writes reference and sample data through the transaction manager.
type Seeder struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// NewSeeder creates a Seeder.
func NewSeeder(txManager repository.TransactionManager, hasher service.PasswordHasher, logger *slog.Logger) *Seeder {
	return &Seeder{txManager: txManager, hasher: hasher, logger: logger}
}

// SeedReference upserts every province, district, sector and category. Parents are
// written before children so relational stores accept the foreign keys.
func (s *Seeder) SeedReference(ctx context.Context, ref *Reference) error {
	err := s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		locations := repos.NewLocationRepository()
		for i := range ref.Provinces {
			if err := locations.SaveProvince(ctx, &ref.Provinces[i]); err != nil {
				return errors.Wrapf(err, "province %s", ref.Provinces[i].ID)
			}
		}
		for i := range ref.Districts {
			if err := locations.SaveDistrict(ctx, &ref.Districts[i]); err != nil {
				return errors.Wrapf(err, "district %s", ref.Districts[i].ID)
			}
		}
		for i := range ref.Sectors {
			if err := locations.SaveSector(ctx, &ref.Sectors[i]); err != nil {
				return errors.Wrapf(err, "sector %s", ref.Sectors[i].ID)
			}
		}

		categories := repos.NewCategoryRepository()
		for i := range ref.Categories {
			if err := categories.Save(ctx, &ref.Categories[i]); err != nil {
				return errors.Wrapf(err, "category %s", ref.Categories[i].ID)
			}
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to seed reference data")
	}

	s.logger.Info("Reference data seeded",
		slog.Int("provinces", len(ref.Provinces)),
		slog.Int("districts", len(ref.Districts)),
		slog.Int("sectors", len(ref.Sectors)),
		slog.Int("categories", len(ref.Categories)),
	)

	return nil
}

// SeedSamples creates the demo records that do not exist yet. Existing rows are left untouched.
func (s *Seeder) SeedSamples(ctx context.Context, samples *Samples) error {
	passwordHash, err := s.hasher.Hash(samples.Password)
	if err != nil {
		return errors.Wrap(err, "failed to hash sample password")
	}

	created := 0
	err = s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		users := repos.NewUserRepository()
		for _, su := range samples.Users {
			_, err := users.FindByID(ctx, SampleID(su.Key))
			if err == nil {
				continue
			}
			if !errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrapf(err, "user %s", su.Key)
			}

			user := &entity.User{
				ID:              SampleID(su.Key),
				Email:           su.Email,
				FirstName:       su.FirstName,
				LastName:        su.LastName,
				Role:            su.Role,
				PasswordHash:    passwordHash,
				ProfileImageURL: su.ProfileImageURL,
			}
			if err := users.Create(ctx, user); err != nil {
				return errors.Wrapf(err, "user %s", su.Key)
			}
			created++
		}

		farmers := repos.NewFarmerRepository()
		for _, sf := range samples.Farmers {
			_, err := farmers.FindByID(ctx, SampleID(sf.Key))
			if err == nil {
				continue
			}
			if !errors.Is(err, repository.ErrFarmerNotFound) {
				return errors.Wrapf(err, "farmer %s", sf.Key)
			}

			if err := farmers.Create(ctx, sf.toEntity()); err != nil {
				return errors.Wrapf(err, "farmer %s", sf.Key)
			}
			created++
		}

		products := repos.NewProductRepository()
		for _, sp := range samples.Products {
			_, err := products.FindByID(ctx, SampleID(sp.Key))
			if err == nil {
				continue
			}
			if !errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrapf(err, "product %s", sp.Key)
			}

			if err := products.Create(ctx, sp.toEntity()); err != nil {
				return errors.Wrapf(err, "product %s", sp.Key)
			}
			created++
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to seed sample data")
	}

	s.logger.Info("Sample data seeded", slog.Int("created", created))

	return nil
}

func (sf sampleFarmer) toEntity() *entity.Farmer {
	farmer := &entity.Farmer{
		ID:           SampleID(sf.Key),
		UserID:       SampleID(sf.User),
		FarmName:     sf.FarmName,
		Description:  sf.Description,
		Phone:        sf.Phone,
		Rating:       sf.Rating,
		TotalRatings: sf.TotalRatings,
		RatingSum:    sf.Rating.Mul(decimal.NewFromInt(int64(sf.TotalRatings))),
		IsActive:     true,
		Latitude:     &sf.Latitude,
		Longitude:    &sf.Longitude,
	}
	if sf.ProvinceID != "" {
		farmer.ProvinceID = &sf.ProvinceID
	}
	if sf.DistrictID != "" {
		farmer.DistrictID = &sf.DistrictID
	}
	if sf.SectorID != "" {
		farmer.SectorID = &sf.SectorID
	}

	return farmer
}

func (sp sampleProduct) toEntity() *entity.Product {
	product := &entity.Product{
		ID:                SampleID(sp.Key),
		FarmerID:          SampleID(sp.Farmer),
		Name:              sp.Name,
		NameKinyarwanda:   sp.NameKinyarwanda,
		Description:       sp.Description,
		Unit:              sp.Unit,
		PricePerUnit:      sp.PricePerUnit,
		AvailableQuantity: sp.AvailableQuantity,
		MinOrderQuantity:  sp.MinOrderQuantity,
		IsAvailable:       true,
		ImageURL:          sp.ImageURL,
	}
	if sp.CategoryID != "" {
		product.CategoryID = &sp.CategoryID
	}

	return product
}

// Register seeds on application start according to cfg.Storage.
func Register(lc fx.Lifecycle, cfg *config.Config, seeder *Seeder) {
	if !cfg.Storage.SeedReference && !cfg.Storage.SeedSamples {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if cfg.Storage.SeedReference {
				ref, err := LoadReference()
				if err != nil {
					return err
				}
				if err := seeder.SeedReference(ctx, ref); err != nil {
					return err
				}
			}

			if cfg.Storage.SeedSamples {
				samples, err := LoadSamples()
				if err != nil {
					return err
				}

				return seeder.SeedSamples(ctx, samples)
			}

			return nil
		},
	})
}
