package assessments

import (
	"context"
	"errors"
	"testing"

	"mindhub-service/internal/app/contracts"
	"mindhub-service/internal/app/models"
	"mindhub-service/internal/pkg/clinimetrix"
	"mindhub-service/internal/pkg/dto/requests"
	"mindhub-service/internal/pkg/dto/responses"
	"mindhub-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAssessmentRepository struct {
	assessments map[string]*models.Assessment
}

func newFakeAssessmentRepository() *fakeAssessmentRepository {
	return &fakeAssessmentRepository{assessments: make(map[string]*models.Assessment)}
}

func (r *fakeAssessmentRepository) CreateAssessment(ctx context.Context, assessment *models.Assessment) (string, error) {
	copied := *assessment
	r.assessments[assessment.ID] = &copied
	return assessment.ID, nil
}

func (r *fakeAssessmentRepository) FindAssessmentByID(ctx context.Context, assessmentID string) (*models.Assessment, error) {
	assessment, ok := r.assessments[assessmentID]
	if !ok {
		return nil, nil
	}
	copied := *assessment
	return &copied, nil
}

func (r *fakeAssessmentRepository) FindAssessmentsBySubject(ctx context.Context, subjectReference string) ([]models.Assessment, error) {
	var out []models.Assessment
	for _, assessment := range r.assessments {
		if assessment.SubjectReference == subjectReference {
			out = append(out, *assessment)
		}
	}
	return out, nil
}

func (r *fakeAssessmentRepository) UpdateAssessment(ctx context.Context, assessment *models.Assessment) error {
	copied := *assessment
	r.assessments[assessment.ID] = &copied
	return nil
}

func (r *fakeAssessmentRepository) DeleteAssessmentByID(ctx context.Context, assessmentID string) error {
	delete(r.assessments, assessmentID)
	return nil
}

// fakeInstrumentCatalog serves fixed definitions keyed by id and version.
type fakeInstrumentCatalog struct {
	instruments map[string]*models.InstrumentDefinition
}

func (c *fakeInstrumentCatalog) FindByIDAndVersion(ctx context.Context, instrumentID, version string) (*models.InstrumentDefinition, error) {
	instrument, ok := c.instruments[instrumentID+"|"+version]
	if !ok {
		return nil, exceptions.ErrInstrumentNotFound(nil, instrumentID, version)
	}
	return instrument, nil
}

func (c *fakeInstrumentCatalog) CreateInstrument(ctx context.Context, instrument *models.InstrumentDefinition) (*models.InstrumentDefinition, error) {
	return instrument, nil
}

func (c *fakeInstrumentCatalog) FindAll(ctx context.Context) ([]responses.InstrumentSummary, error) {
	return nil, nil
}

func (c *fakeInstrumentCatalog) UpdateInstrument(ctx context.Context, instrument *models.InstrumentDefinition) (*models.InstrumentDefinition, error) {
	return instrument, nil
}

func (c *fakeInstrumentCatalog) DeleteByIDAndVersion(ctx context.Context, instrumentID, version string) error {
	return nil
}

func (c *fakeInstrumentCatalog) ResolveItemOptions(ctx context.Context, instrumentID, version string, itemNumber int) (*responses.ResolvedItemOptions, error) {
	return nil, nil
}

func (c *fakeInstrumentCatalog) InterpretSubscaleScore(ctx context.Context, instrumentID, version, subscaleID string, score float64) (*responses.SubscaleInterpretation, error) {
	return nil, nil
}

type fakeEventPublisher struct {
	published []*contracts.AssessmentEvent
	fail      bool
}

func (p *fakeEventPublisher) PublishAssessmentEvent(ctx context.Context, event *contracts.AssessmentEvent) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, event)
	return nil
}

type fakeSnapshotStorage struct {
	stored []string
}

func (s *fakeSnapshotStorage) StoreAssessmentSnapshot(ctx context.Context, assessment *models.Assessment) (string, error) {
	s.stored = append(s.stored, assessment.ID)
	return "assessments/" + assessment.InstrumentID + "/" + assessment.ID + ".json", nil
}

type fixedNormativeClient struct {
	norms *models.NormativeData
	err   error
}

func (c *fixedNormativeClient) FindNorms(ctx context.Context, instrumentID string, demographics clinimetrix.Demographics) (*models.NormativeData, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.norms, nil
}

func threeItemInstrument() *models.InstrumentDefinition {
	return &models.InstrumentDefinition{
		ID:            "mood-check",
		Name:          "Mood Check Inventory",
		Version:       "1.0",
		ItemCount:     3,
		ScoreRange:    models.ScoreRange{Min: 0, Max: 9},
		ScoringMethod: models.ScoringMethodSum,
		Items: []models.Item{
			{Number: 1, Text: "Low mood", Required: true},
			{Number: 2, Text: "Poor sleep", ReverseScored: true},
			{Number: 3, Text: "Low energy"},
		},
		ResponseOptionSets: []models.ResponseOptionSet{
			{
				Scope: models.OptionScopeGlobal,
				Options: []models.ResponseOption{
					{Value: "0", Label: "not at all", Score: 0},
					{Value: "1", Label: "sometimes", Score: 1},
					{Value: "2", Label: "often", Score: 2},
					{Value: "3", Label: "always", Score: 3},
				},
			},
		},
		InterpretationBands: []models.InterpretationBand{
			{MinScore: 0, MaxScore: 4, Severity: "minimal", Label: "Minimal"},
			{MinScore: 5, MaxScore: 9, Severity: "elevated", Label: "Elevated"},
		},
		AlertRules: []models.AlertRule{
			{ItemNumber: 3, MinScore: 3, Severity: "high", Message: "Item 3 endorsed at maximum"},
		},
	}
}

type usecaseFixture struct {
	usecase    contracts.AssessmentUsecase
	repository *fakeAssessmentRepository
	publisher  *fakeEventPublisher
	storage    *fakeSnapshotStorage
}

func newUsecaseFixture(t *testing.T, normative clinimetrix.NormativeClient) *usecaseFixture {
	t.Helper()
	catalog := &fakeInstrumentCatalog{instruments: map[string]*models.InstrumentDefinition{
		"mood-check|1.0": threeItemInstrument(),
	}}
	repo := newFakeAssessmentRepository()
	publisher := &fakeEventPublisher{}
	storage := &fakeSnapshotStorage{}
	uc := NewAssessmentUsecase(repo, catalog, normative, publisher, storage, zap.NewNop())
	return &usecaseFixture{usecase: uc, repository: repo, publisher: publisher, storage: storage}
}

func startAssessment(t *testing.T, fx *usecaseFixture) *models.Assessment {
	t.Helper()
	assessment, err := fx.usecase.StartAssessment(context.Background(), &requests.StartAssessment{
		InstrumentID:      "mood-check",
		InstrumentVersion: "1.0",
		SubjectReference:  "Patient/alpha",
	})
	require.NoError(t, err)
	return assessment
}

func TestStartAssessment(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a draft pinned to the requested version", func(t *testing.T) {
		fx := newUsecaseFixture(t, &fixedNormativeClient{err: clinimetrix.ErrNormsNotFound})

		assessment := startAssessment(t, fx)
		assert.NotEmpty(t, assessment.ID)
		assert.Equal(t, models.AssessmentStatusDraft, assessment.Status)
		assert.Equal(t, "1.0", assessment.InstrumentVersion)
		require.Len(t, assessment.Audit, 1)
		assert.Equal(t, models.AssessmentAuditActionCreated, assessment.Audit[0].Action)
	})

	t.Run("unknown instrument version fails", func(t *testing.T) {
		fx := newUsecaseFixture(t, &fixedNormativeClient{err: clinimetrix.ErrNormsNotFound})

		_, err := fx.usecase.StartAssessment(ctx, &requests.StartAssessment{
			InstrumentID:      "mood-check",
			InstrumentVersion: "9.9",
			SubjectReference:  "Patient/alpha",
		})
		require.Error(t, err)
	})
}

func TestSubmitResponses(t *testing.T) {
	ctx := context.Background()

	t.Run("recomputes derived fields", func(t *testing.T) {
		fx := newUsecaseFixture(t, &fixedNormativeClient{err: clinimetrix.ErrNormsNotFound})
		assessment := startAssessment(t, fx)

		detail, err := fx.usecase.SubmitResponses(ctx, assessment.ID, &requests.SubmitResponses{
			Responses: []requests.ItemAnswer{
				{ItemNumber: 1, RawValue: 2},
				{ItemNumber: 2, RawValue: 1},
				{ItemNumber: 3, RawValue: 3},
			},
		})
		require.NoError(t, err)

		// item 2 reverses: 3 - 1 = 2, total 2 + 2 + 3 = 7
		assert.Equal(t, 7.0, detail.Assessment.TotalScore)
		require.NotNil(t, detail.Assessment.Interpretation)
		assert.Equal(t, "elevated", detail.Assessment.Interpretation.Severity)
		require.Len(t, detail.Assessment.Alerts, 1)
		assert.Equal(t, 3, detail.Assessment.Alerts[0].ItemNumber)
		assert.Equal(t, 100.0, detail.Assessment.CompletionPercentage)
		assert.Empty(t, detail.Assessment.Warnings)
	})

	t.Run("invalid value becomes a warning, item stays unanswered", func(t *testing.T) {
		fx := newUsecaseFixture(t, &fixedNormativeClient{err: clinimetrix.ErrNormsNotFound})
		assessment := startAssessment(t, fx)

		detail, err := fx.usecase.SubmitResponses(ctx, assessment.ID, &requests.SubmitResponses{
			Responses: []requests.ItemAnswer{
				{ItemNumber: 1, RawValue: 2},
				{ItemNumber: 2, RawValue: "definitely"},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, 2.0, detail.Assessment.TotalScore)
		require.Len(t, detail.Assessment.Warnings, 1)
		assert.InDelta(t, 100.0/3.0, detail.Assessment.CompletionPercentage, 0.0001)
	})

	t.Run("resubmitting identical responses is idempotent", func(t *testing.T) {
		fx := newUsecaseFixture(t, &fixedNormativeClient{err: clinimetrix.ErrNormsNotFound})
		assessment := startAssessment(t, fx)

		request := &requests.SubmitResponses{
			Responses: []requests.ItemAnswer{
				{ItemNumber: 1, RawValue: 1},
				{ItemNumber: 2, RawValue: 2},
			},
		}
		first, err := fx.usecase.SubmitResponses(ctx, assessment.ID, request)
		require.NoError(t, err)
		second, err := fx.usecase.SubmitResponses(ctx, assessment.ID, request)
		require.NoError(t, err)

		assert.Equal(t, first.Assessment.TotalScore, second.Assessment.TotalScore)
		assert.Equal(t, first.Assessment.ItemScores, second.Assessment.ItemScores)
		assert.Equal(t, first.Assessment.Responses, second.Assessment.Responses)
	})

	t.Run("finalized assessment rejects edits", func(t *testing.T) {
		fx := newUsecaseFixture(t, &fixedNormativeClient{err: clinimetrix.ErrNormsNotFound})
		assessment := startAssessment(t, fx)

		_, err := fx.usecase.FinalizeAssessment(ctx, assessment.ID)
		require.NoError(t, err)

		_, err = fx.usecase.SubmitResponses(ctx, assessment.ID, &requests.SubmitResponses{
			Responses: []requests.ItemAnswer{{ItemNumber: 1, RawValue: 1}},
		})
		require.Error(t, err)
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, 409, customErr.StatusCode)
	})

	t.Run("unknown assessment returns not found", func(t *testing.T) {
		fx := newUsecaseFixture(t, &fixedNormativeClient{err: clinimetrix.ErrNormsNotFound})

		_, err := fx.usecase.SubmitResponses(ctx, "missing", &requests.SubmitResponses{
			Responses: []requests.ItemAnswer{{ItemNumber: 1, RawValue: 1}},
		})
		require.Error(t, err)
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, 404, customErr.StatusCode)
	})
}

func TestValidateAssessment(t *testing.T) {
	ctx := context.Background()
	fx := newUsecaseFixture(t, &fixedNormativeClient{err: clinimetrix.ErrNormsNotFound})
	assessment := startAssessment(t, fx)

	_, err := fx.usecase.SubmitResponses(ctx, assessment.ID, &requests.SubmitResponses{
		Responses: []requests.ItemAnswer{{ItemNumber: 2, RawValue: 2}},
	})
	require.NoError(t, err)

	result, err := fx.usecase.ValidateAssessment(ctx, assessment.ID)
	require.NoError(t, err)
	assert.False(t, result.Completeness.IsValid)
	require.Len(t, result.Completeness.Errors, 1)
	assert.Equal(t, 1, result.Completeness.Errors[0].ItemNumber)
	assert.NotEmpty(t, result.Completeness.Warnings)
}

func TestAdvancedScore(t *testing.T) {
	ctx := context.Background()

	t.Run("uses fetched norms on the primary path", func(t *testing.T) {
		fx := newUsecaseFixture(t, &fixedNormativeClient{
			norms: &models.NormativeData{Mean: 4.5, StandardDeviation: 1.5, SampleSize: 100},
		})
		assessment := startAssessment(t, fx)
		_, err := fx.usecase.SubmitResponses(ctx, assessment.ID, &requests.SubmitResponses{
			Responses: []requests.ItemAnswer{
				{ItemNumber: 1, RawValue: 2},
				{ItemNumber: 2, RawValue: 1},
				{ItemNumber: 3, RawValue: 3},
			},
		})
		require.NoError(t, err)

		result, err := fx.usecase.AdvancedScore(ctx, assessment.ID, &requests.AdvancedScore{AgeYears: 30, Sex: "female"})
		require.NoError(t, err)
		assert.False(t, result.Advanced.UsedFallback)
		assert.InDelta(t, (7.0-4.5)/1.5, result.Advanced.ZScore, 0.0001)
	})

	t.Run("falls back when norms are unavailable", func(t *testing.T) {
		fx := newUsecaseFixture(t, &fixedNormativeClient{err: clinimetrix.ErrNormsNotFound})
		assessment := startAssessment(t, fx)

		result, err := fx.usecase.AdvancedScore(ctx, assessment.ID, &requests.AdvancedScore{})
		require.NoError(t, err)
		assert.True(t, result.Advanced.UsedFallback)
	})

	t.Run("carries subscale scores into the report", func(t *testing.T) {
		instrument := threeItemInstrument()
		instrument.Subscales = []models.Subscale{
			{ID: "mood", Name: "Mood", MemberItemNumbers: []int{1, 2}},
		}
		catalog := &fakeInstrumentCatalog{instruments: map[string]*models.InstrumentDefinition{
			"mood-check|1.0": instrument,
		}}
		repo := newFakeAssessmentRepository()
		uc := NewAssessmentUsecase(repo, catalog, &fixedNormativeClient{err: clinimetrix.ErrNormsNotFound}, &fakeEventPublisher{}, &fakeSnapshotStorage{}, zap.NewNop())

		assessment, err := uc.StartAssessment(ctx, &requests.StartAssessment{
			InstrumentID:      "mood-check",
			InstrumentVersion: "1.0",
			SubjectReference:  "Patient/alpha",
		})
		require.NoError(t, err)
		_, err = uc.SubmitResponses(ctx, assessment.ID, &requests.SubmitResponses{
			Responses: []requests.ItemAnswer{
				{ItemNumber: 1, RawValue: 2},
				{ItemNumber: 2, RawValue: 1},
			},
		})
		require.NoError(t, err)

		result, err := uc.AdvancedScore(ctx, assessment.ID, &requests.AdvancedScore{})
		require.NoError(t, err)
		// Item 2 reverses to 3-1=2, so the mood subscale sums to 4.
		require.Len(t, result.Advanced.SubscaleScores, 1)
		assert.Equal(t, "mood", result.Advanced.SubscaleScores[0].SubscaleID)
		assert.Equal(t, float64(4), result.Advanced.SubscaleScores[0].Score)
	})
}

func TestFinalizeAssessment(t *testing.T) {
	ctx := context.Background()

	t.Run("locks the record, publishes, archives", func(t *testing.T) {
		fx := newUsecaseFixture(t, &fixedNormativeClient{err: clinimetrix.ErrNormsNotFound})
		assessment := startAssessment(t, fx)
		_, err := fx.usecase.SubmitResponses(ctx, assessment.ID, &requests.SubmitResponses{
			Responses: []requests.ItemAnswer{{ItemNumber: 1, RawValue: 1}},
		})
		require.NoError(t, err)

		detail, err := fx.usecase.FinalizeAssessment(ctx, assessment.ID)
		require.NoError(t, err)
		assert.Equal(t, models.AssessmentStatusFinalized, detail.Assessment.Status)
		require.NotNil(t, detail.Assessment.FinalizedAt)

		require.Len(t, fx.publisher.published, 1)
		assert.Equal(t, assessment.ID, fx.publisher.published[0].AssessmentID)
		assert.Equal(t, []string{assessment.ID}, fx.storage.stored)
	})

	t.Run("double finalize conflicts", func(t *testing.T) {
		fx := newUsecaseFixture(t, &fixedNormativeClient{err: clinimetrix.ErrNormsNotFound})
		assessment := startAssessment(t, fx)

		_, err := fx.usecase.FinalizeAssessment(ctx, assessment.ID)
		require.NoError(t, err)
		_, err = fx.usecase.FinalizeAssessment(ctx, assessment.ID)
		require.Error(t, err)
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, 409, customErr.StatusCode)
	})

	t.Run("broker outage does not roll back finalization", func(t *testing.T) {
		fx := newUsecaseFixture(t, &fixedNormativeClient{err: clinimetrix.ErrNormsNotFound})
		fx.publisher.fail = true
		assessment := startAssessment(t, fx)

		detail, err := fx.usecase.FinalizeAssessment(ctx, assessment.ID)
		require.NoError(t, err)
		assert.Equal(t, models.AssessmentStatusFinalized, detail.Assessment.Status)

		stored, err := fx.repository.FindAssessmentByID(ctx, assessment.ID)
		require.NoError(t, err)
		assert.Equal(t, models.AssessmentStatusFinalized, stored.Status)
	})
}

func TestRescoreAssessment(t *testing.T) {
	ctx := context.Background()

	fx := newUsecaseFixture(t, &fixedNormativeClient{err: clinimetrix.ErrNormsNotFound})

	// A corrected revision where item 2 is no longer reverse scored.
	revised := threeItemInstrument()
	revised.Version = "1.1"
	revised.Items[1].ReverseScored = false
	catalog := &fakeInstrumentCatalog{instruments: map[string]*models.InstrumentDefinition{
		"mood-check|1.0": threeItemInstrument(),
		"mood-check|1.1": revised,
	}}
	fx.usecase = NewAssessmentUsecase(fx.repository, catalog, &fixedNormativeClient{err: clinimetrix.ErrNormsNotFound}, fx.publisher, fx.storage, zap.NewNop())

	assessment := startAssessment(t, fx)
	_, err := fx.usecase.SubmitResponses(ctx, assessment.ID, &requests.SubmitResponses{
		Responses: []requests.ItemAnswer{
			{ItemNumber: 1, RawValue: 2},
			{ItemNumber: 2, RawValue: 1},
			{ItemNumber: 3, RawValue: 3},
		},
	})
	require.NoError(t, err)

	detail, err := fx.usecase.RescoreAssessment(ctx, assessment.ID, &requests.RescoreAssessment{
		InstrumentVersion: "1.1",
		Note:              "reverse flag removed in revision 1.1",
	})
	require.NoError(t, err)

	// Without the reverse flag the total is 2 + 1 + 3 = 6.
	assert.Equal(t, 6.0, detail.Assessment.TotalScore)
	assert.Equal(t, "1.1", detail.Assessment.InstrumentVersion)
	last := detail.Assessment.Audit[len(detail.Assessment.Audit)-1]
	assert.Equal(t, models.AssessmentAuditActionRescored, last.Action)
	assert.Equal(t, "reverse flag removed in revision 1.1", last.Note)

	t.Run("unknown target version fails", func(t *testing.T) {
		_, err := fx.usecase.RescoreAssessment(ctx, assessment.ID, &requests.RescoreAssessment{InstrumentVersion: "9.9"})
		require.Error(t, err)
	})
}

func TestFindAssessmentsBySubject(t *testing.T) {
	ctx := context.Background()
	fx := newUsecaseFixture(t, &fixedNormativeClient{err: clinimetrix.ErrNormsNotFound})

	first := startAssessment(t, fx)
	second := startAssessment(t, fx)
	require.NotEqual(t, first.ID, second.ID)

	details, err := fx.usecase.FindAssessmentsBySubject(ctx, "Patient/alpha")
	require.NoError(t, err)
	assert.Len(t, details, 2)

	details, err = fx.usecase.FindAssessmentsBySubject(ctx, "Patient/beta")
	require.NoError(t, err)
	assert.Empty(t, details)
}

func TestDeleteAssessmentByID(t *testing.T) {
	ctx := context.Background()
	fx := newUsecaseFixture(t, &fixedNormativeClient{err: clinimetrix.ErrNormsNotFound})
	assessment := startAssessment(t, fx)

	require.NoError(t, fx.usecase.DeleteAssessmentByID(ctx, assessment.ID))

	err := fx.usecase.DeleteAssessmentByID(ctx, assessment.ID)
	require.Error(t, err)
}
