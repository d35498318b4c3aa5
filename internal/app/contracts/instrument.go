package contracts

import (
	"context"

	"mindhub-service/internal/app/models"
	"mindhub-service/internal/pkg/dto/responses"
)

// InstrumentRepository is the template record store. The engine never
// mutates a served definition; repositories return fresh copies per load.
type InstrumentRepository interface {
	CreateInstrument(ctx context.Context, instrument *models.InstrumentDefinition) (string, error)
	FindAll(ctx context.Context) ([]models.InstrumentDefinition, error)
	FindByIDAndVersion(ctx context.Context, instrumentID, version string) (*models.InstrumentDefinition, error)
	UpdateInstrument(ctx context.Context, instrument *models.InstrumentDefinition) error
	DeleteByIDAndVersion(ctx context.Context, instrumentID, version string) error
}

type InstrumentUsecase interface {
	CreateInstrument(ctx context.Context, instrument *models.InstrumentDefinition) (*models.InstrumentDefinition, error)
	FindAll(ctx context.Context) ([]responses.InstrumentSummary, error)
	FindByIDAndVersion(ctx context.Context, instrumentID, version string) (*models.InstrumentDefinition, error)
	UpdateInstrument(ctx context.Context, instrument *models.InstrumentDefinition) (*models.InstrumentDefinition, error)
	DeleteByIDAndVersion(ctx context.Context, instrumentID, version string) error
	ResolveItemOptions(ctx context.Context, instrumentID, version string, itemNumber int) (*responses.ResolvedItemOptions, error)
	InterpretSubscaleScore(ctx context.Context, instrumentID, version, subscaleID string, score float64) (*responses.SubscaleInterpretation, error)
}
