package instruments

import (
	"context"
	"fmt"
	"time"

	"mindhub-service/internal/app/config"
	"mindhub-service/internal/app/contracts"
	"mindhub-service/internal/app/models"
	"mindhub-service/internal/pkg/clinimetrix"
	"mindhub-service/internal/pkg/constvars"
	"mindhub-service/internal/pkg/dto/responses"
	"mindhub-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type instrumentUsecase struct {
	InstrumentRepository contracts.InstrumentRepository
	RedisRepository      contracts.RedisRepository
	InternalConfig       *config.InternalConfig
	Log                  *zap.Logger
}

func NewInstrumentUsecase(
	instrumentMongoRepository contracts.InstrumentRepository,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.InstrumentUsecase {
	return &instrumentUsecase{
		InstrumentRepository: instrumentMongoRepository,
		RedisRepository:      redisRepository,
		InternalConfig:       internalConfig,
		Log:                  logger,
	}
}

func (uc *instrumentUsecase) CreateInstrument(ctx context.Context, instrument *models.InstrumentDefinition) (*models.InstrumentDefinition, error) {
	if err := clinimetrix.ValidateDefinition(instrument); err != nil {
		return nil, exceptions.ErrInstrumentDefinitionInvalid(err)
	}

	existing, err := uc.InstrumentRepository.FindByIDAndVersion(ctx, instrument.ID, instrument.Version)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrInstrumentVersionExists(instrument.ID, instrument.Version)
	}

	uc.warnOnSynthesizedOptions(instrument)

	if _, err := uc.InstrumentRepository.CreateInstrument(ctx, instrument); err != nil {
		return nil, err
	}
	return instrument, nil
}

func (uc *instrumentUsecase) FindAll(ctx context.Context) ([]responses.InstrumentSummary, error) {
	instruments, err := uc.InstrumentRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]responses.InstrumentSummary, 0, len(instruments))
	for _, instrument := range instruments {
		summaries = append(summaries, responses.InstrumentSummary{
			InstrumentID:  instrument.ID,
			Name:          instrument.Name,
			Abbreviation:  instrument.Abbreviation,
			Version:       instrument.Version,
			ItemCount:     instrument.ItemCount,
			SubscaleCount: len(instrument.Subscales),
		})
	}
	return summaries, nil
}

func (uc *instrumentUsecase) FindByIDAndVersion(ctx context.Context, instrumentID, version string) (*models.InstrumentDefinition, error) {
	cacheKey := fmt.Sprintf(constvars.RedisInstrumentCacheKeyFormat, instrumentID, version)

	cached, err := uc.RedisRepository.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		instrument := new(models.InstrumentDefinition)
		if err := json.Unmarshal([]byte(cached), instrument); err == nil {
			return instrument, nil
		}
	}

	instrument, err := uc.InstrumentRepository.FindByIDAndVersion(ctx, instrumentID, version)
	if err != nil {
		return nil, err
	}
	if instrument == nil {
		return nil, exceptions.ErrInstrumentNotFound(nil, instrumentID, version)
	}

	cacheTTL := time.Duration(uc.InternalConfig.App.InstrumentCacheTTLInMinute) * time.Minute
	if err := uc.RedisRepository.Set(ctx, cacheKey, instrument, cacheTTL); err != nil {
		uc.Log.Warn("instrument cache write failed",
			zap.String(constvars.LoggingInstrumentIDKey, instrumentID),
			zap.Error(err),
		)
	}
	return instrument, nil
}

func (uc *instrumentUsecase) UpdateInstrument(ctx context.Context, instrument *models.InstrumentDefinition) (*models.InstrumentDefinition, error) {
	if err := clinimetrix.ValidateDefinition(instrument); err != nil {
		return nil, exceptions.ErrInstrumentDefinitionInvalid(err)
	}

	existing, err := uc.InstrumentRepository.FindByIDAndVersion(ctx, instrument.ID, instrument.Version)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, exceptions.ErrInstrumentNotFound(nil, instrument.ID, instrument.Version)
	}

	uc.warnOnSynthesizedOptions(instrument)

	if err := uc.InstrumentRepository.UpdateInstrument(ctx, instrument); err != nil {
		return nil, err
	}
	uc.evictCache(ctx, instrument.ID, instrument.Version)
	return instrument, nil
}

func (uc *instrumentUsecase) DeleteByIDAndVersion(ctx context.Context, instrumentID, version string) error {
	existing, err := uc.InstrumentRepository.FindByIDAndVersion(ctx, instrumentID, version)
	if err != nil {
		return err
	}
	if existing == nil {
		return exceptions.ErrInstrumentNotFound(nil, instrumentID, version)
	}

	if err := uc.InstrumentRepository.DeleteByIDAndVersion(ctx, instrumentID, version); err != nil {
		return err
	}
	uc.evictCache(ctx, instrumentID, version)
	return nil
}

func (uc *instrumentUsecase) ResolveItemOptions(ctx context.Context, instrumentID, version string, itemNumber int) (*responses.ResolvedItemOptions, error) {
	instrument, err := uc.FindByIDAndVersion(ctx, instrumentID, version)
	if err != nil {
		return nil, err
	}
	if _, ok := instrument.ItemByNumber(itemNumber); !ok {
		return nil, exceptions.ErrItemNotFound(instrumentID, itemNumber)
	}

	resolution := clinimetrix.ResolveOptions(instrument, itemNumber)
	return &responses.ResolvedItemOptions{
		ItemNumber:  itemNumber,
		Scope:       resolution.Scope,
		Synthesized: resolution.Synthesized,
		Options:     resolution.Options,
	}, nil
}

func (uc *instrumentUsecase) InterpretSubscaleScore(ctx context.Context, instrumentID, version, subscaleID string, score float64) (*responses.SubscaleInterpretation, error) {
	instrument, err := uc.FindByIDAndVersion(ctx, instrumentID, version)
	if err != nil {
		return nil, err
	}
	if _, ok := instrument.SubscaleByID(subscaleID); !ok {
		return nil, exceptions.ErrUnknownSubscale(subscaleID)
	}

	result := &responses.SubscaleInterpretation{SubscaleID: subscaleID, Score: score}
	interpretation, err := clinimetrix.InterpretSubscale(instrument, subscaleID, score)
	if err != nil {
		result.Warning = err.Error()
		return result, nil
	}
	result.Interpretation = interpretation
	return result, nil
}

func (uc *instrumentUsecase) evictCache(ctx context.Context, instrumentID, version string) {
	cacheKey := fmt.Sprintf(constvars.RedisInstrumentCacheKeyFormat, instrumentID, version)
	if err := uc.RedisRepository.Delete(ctx, cacheKey); err != nil {
		uc.Log.Warn("instrument cache eviction failed",
			zap.String(constvars.LoggingInstrumentIDKey, instrumentID),
			zap.Error(err),
		)
	}
}

// warnOnSynthesizedOptions flags every item the engine would serve default
// options for, so incomplete definitions are visible before the first score.
func (uc *instrumentUsecase) warnOnSynthesizedOptions(instrument *models.InstrumentDefinition) {
	for _, item := range instrument.Items {
		resolution := clinimetrix.ResolveOptions(instrument, item.Number)
		if resolution.Synthesized {
			uc.Log.Warn("item has no declared response options, defaults will be synthesized",
				zap.String(constvars.LoggingInstrumentIDKey, instrument.ID),
				zap.String(constvars.LoggingInstrumentVerKey, instrument.Version),
				zap.Int("item_number", item.Number),
			)
		}
	}
}
