package assessments

import (
	"context"
	"time"

	"mindhub-service/internal/app/contracts"
	"mindhub-service/internal/app/models"
	"mindhub-service/internal/pkg/clinimetrix"
	"mindhub-service/internal/pkg/constvars"
	"mindhub-service/internal/pkg/dto/requests"
	"mindhub-service/internal/pkg/dto/responses"
	"mindhub-service/internal/pkg/exceptions"
	"mindhub-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type assessmentUsecase struct {
	AssessmentRepository contracts.AssessmentRepository
	InstrumentUsecase    contracts.InstrumentUsecase
	NormativeClient      clinimetrix.NormativeClient
	EventPublisher       contracts.EventPublisher
	SnapshotStorage      contracts.SnapshotStorage
	Log                  *zap.Logger
}

func NewAssessmentUsecase(
	assessmentMongoRepository contracts.AssessmentRepository,
	instrumentUsecase contracts.InstrumentUsecase,
	normativeClient clinimetrix.NormativeClient,
	eventPublisher contracts.EventPublisher,
	snapshotStorage contracts.SnapshotStorage,
	logger *zap.Logger,
) contracts.AssessmentUsecase {
	return &assessmentUsecase{
		AssessmentRepository: assessmentMongoRepository,
		InstrumentUsecase:    instrumentUsecase,
		NormativeClient:      normativeClient,
		EventPublisher:       eventPublisher,
		SnapshotStorage:      snapshotStorage,
		Log:                  logger,
	}
}

func (uc *assessmentUsecase) StartAssessment(ctx context.Context, request *requests.StartAssessment) (*models.Assessment, error) {
	// Both instrument id and version are pinned at start time so later
	// instrument edits never silently change this record's meaning.
	if _, err := uc.InstrumentUsecase.FindByIDAndVersion(ctx, request.InstrumentID, request.InstrumentVersion); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	assessment := &models.Assessment{
		ID:                utils.GenerateAssessmentID(),
		InstrumentID:      request.InstrumentID,
		InstrumentVersion: request.InstrumentVersion,
		SubjectReference:  request.SubjectReference,
		Status:            models.AssessmentStatusDraft,
		AdministeredAt:    now,
		Audit: []models.AssessmentAuditEntry{
			{Action: models.AssessmentAuditActionCreated, InstrumentVersion: request.InstrumentVersion, At: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := uc.AssessmentRepository.CreateAssessment(ctx, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

func (uc *assessmentUsecase) SubmitResponses(ctx context.Context, assessmentID string, request *requests.SubmitResponses) (*responses.AssessmentDetail, error) {
	assessment, err := uc.loadAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment.Status == models.AssessmentStatusFinalized {
		return nil, exceptions.ErrAssessmentFinalized(assessmentID)
	}

	for _, answer := range request.Responses {
		assessment.SetResponse(answer.ItemNumber, answer.RawValue)
	}

	if err := uc.recompute(ctx, assessment, models.AssessmentAuditActionScored, ""); err != nil {
		return nil, err
	}
	if err := uc.AssessmentRepository.UpdateAssessment(ctx, assessment); err != nil {
		return nil, err
	}
	return assessmentDetail(assessment), nil
}

func (uc *assessmentUsecase) FindAssessmentByID(ctx context.Context, assessmentID string) (*responses.AssessmentDetail, error) {
	assessment, err := uc.loadAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	return assessmentDetail(assessment), nil
}

func (uc *assessmentUsecase) FindAssessmentsBySubject(ctx context.Context, subjectReference string) ([]responses.AssessmentDetail, error) {
	assessments, err := uc.AssessmentRepository.FindAssessmentsBySubject(ctx, subjectReference)
	if err != nil {
		return nil, err
	}

	details := make([]responses.AssessmentDetail, 0, len(assessments))
	for i := range assessments {
		details = append(details, *assessmentDetail(&assessments[i]))
	}
	return details, nil
}

func (uc *assessmentUsecase) ValidateAssessment(ctx context.Context, assessmentID string) (*responses.ValidationResult, error) {
	assessment, err := uc.loadAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	instrument, err := uc.InstrumentUsecase.FindByIDAndVersion(ctx, assessment.InstrumentID, assessment.InstrumentVersion)
	if err != nil {
		return nil, err
	}

	completeness := clinimetrix.ValidateCompleteness(instrument, assessment.ResponseMap())
	return &responses.ValidationResult{
		AssessmentID: assessmentID,
		Completeness: completeness,
	}, nil
}

func (uc *assessmentUsecase) AdvancedScore(ctx context.Context, assessmentID string, request *requests.AdvancedScore) (*responses.AdvancedScoreResult, error) {
	assessment, err := uc.loadAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	instrument, err := uc.InstrumentUsecase.FindByIDAndVersion(ctx, assessment.InstrumentID, assessment.InstrumentVersion)
	if err != nil {
		return nil, err
	}

	demographics := clinimetrix.Demographics{
		AgeYears:  request.AgeYears,
		Sex:       request.Sex,
		Education: request.Education,
	}
	subscaleScores := make([]clinimetrix.SubscaleScore, 0, len(assessment.SubscaleResults))
	for _, subscaleResult := range assessment.SubscaleResults {
		subscaleScores = append(subscaleScores, clinimetrix.SubscaleScore{
			SubscaleID: subscaleResult.SubscaleID,
			Name:       subscaleResult.Name,
			Score:      subscaleResult.Score,
		})
	}
	advanced := clinimetrix.AdvancedScore(ctx, uc.NormativeClient, instrument, assessment.TotalScore, subscaleScores, demographics)
	return &responses.AdvancedScoreResult{
		AssessmentID: assessmentID,
		TotalScore:   assessment.TotalScore,
		Advanced:     advanced,
	}, nil
}

func (uc *assessmentUsecase) FinalizeAssessment(ctx context.Context, assessmentID string) (*responses.AssessmentDetail, error) {
	assessment, err := uc.loadAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment.Status == models.AssessmentStatusFinalized {
		return nil, exceptions.ErrAssessmentFinalized(assessmentID)
	}

	if err := uc.recompute(ctx, assessment, models.AssessmentAuditActionFinalized, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	assessment.Status = models.AssessmentStatusFinalized
	assessment.FinalizedAt = &now

	if err := uc.AssessmentRepository.UpdateAssessment(ctx, assessment); err != nil {
		return nil, err
	}

	// The record is the source of truth; event delivery and archival are
	// best effort and never roll back a finalization.
	uc.publishFinalizedEvent(ctx, assessment)
	uc.archiveSnapshot(ctx, assessment)

	return assessmentDetail(assessment), nil
}

func (uc *assessmentUsecase) RescoreAssessment(ctx context.Context, assessmentID string, request *requests.RescoreAssessment) (*responses.AssessmentDetail, error) {
	assessment, err := uc.loadAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.InstrumentUsecase.FindByIDAndVersion(ctx, assessment.InstrumentID, request.InstrumentVersion); err != nil {
		return nil, err
	}

	assessment.InstrumentVersion = request.InstrumentVersion
	if err := uc.recompute(ctx, assessment, models.AssessmentAuditActionRescored, request.Note); err != nil {
		return nil, err
	}
	if err := uc.AssessmentRepository.UpdateAssessment(ctx, assessment); err != nil {
		return nil, err
	}
	return assessmentDetail(assessment), nil
}

func (uc *assessmentUsecase) DeleteAssessmentByID(ctx context.Context, assessmentID string) error {
	if _, err := uc.loadAssessment(ctx, assessmentID); err != nil {
		return err
	}
	return uc.AssessmentRepository.DeleteAssessmentByID(ctx, assessmentID)
}

func (uc *assessmentUsecase) loadAssessment(ctx context.Context, assessmentID string) (*models.Assessment, error) {
	assessment, err := uc.AssessmentRepository.FindAssessmentByID(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, exceptions.ErrAssessmentNotFound(nil, assessmentID)
	}
	return assessment, nil
}

// recompute rebuilds every derived field from the response list. Scoring
// problems become warnings on the record rather than request failures, so a
// messy submission still produces an honest partial result.
func (uc *assessmentUsecase) recompute(ctx context.Context, assessment *models.Assessment, auditAction, note string) error {
	instrument, err := uc.InstrumentUsecase.FindByIDAndVersion(ctx, assessment.InstrumentID, assessment.InstrumentVersion)
	if err != nil {
		return err
	}

	responseSet := assessment.ResponseMap()
	result := clinimetrix.Score(instrument, responseSet)

	warnings := make([]string, 0, len(result.InputErrors))
	for _, inputErr := range result.InputErrors {
		warnings = append(warnings, inputErr.Message)
	}

	assessment.ItemScores = result.ItemScores
	assessment.TotalScore = result.TotalScore
	assessment.CompletionPercentage = result.CompletionPercentage

	assessment.SubscaleResults = assessment.SubscaleResults[:0]
	for _, subscaleScore := range result.SubscaleScores {
		assessment.SubscaleResults = append(assessment.SubscaleResults, models.SubscaleResult{
			SubscaleID: subscaleScore.SubscaleID,
			Name:       subscaleScore.Name,
			Score:      subscaleScore.Score,
		})
		if hasBandsFor(instrument, subscaleScore.SubscaleID) {
			if _, err := clinimetrix.InterpretSubscale(instrument, subscaleScore.SubscaleID, subscaleScore.Score); err != nil {
				warnings = append(warnings, err.Error())
			}
		}
	}

	interpretation, err := clinimetrix.Interpret(instrument, result.TotalScore)
	if err != nil {
		warnings = append(warnings, err.Error())
		assessment.Interpretation = nil
	} else {
		assessment.Interpretation = interpretation
	}

	assessment.Alerts = clinimetrix.ScanAlerts(instrument, responseSet)
	assessment.Warnings = warnings

	now := time.Now().UTC()
	assessment.Audit = append(assessment.Audit, models.AssessmentAuditEntry{
		Action:            auditAction,
		InstrumentVersion: assessment.InstrumentVersion,
		Note:              note,
		At:                now,
	})
	assessment.UpdatedAt = now
	return nil
}

func (uc *assessmentUsecase) publishFinalizedEvent(ctx context.Context, assessment *models.Assessment) {
	event := &contracts.AssessmentEvent{
		EventID:           utils.GenerateEventID(),
		EventType:         constvars.AssessmentFinalizedEvent,
		AssessmentID:      assessment.ID,
		InstrumentID:      assessment.InstrumentID,
		InstrumentVersion: assessment.InstrumentVersion,
		SubjectReference:  assessment.SubjectReference,
		TotalScore:        assessment.TotalScore,
		AlertCount:        len(assessment.Alerts),
		OccurredAt:        *assessment.FinalizedAt,
	}
	if err := uc.EventPublisher.PublishAssessmentEvent(ctx, event); err != nil {
		uc.Log.Warn("assessment finalized event not published",
			zap.String(constvars.LoggingAssessmentIDKey, assessment.ID),
			zap.Error(err),
		)
	}
}

func (uc *assessmentUsecase) archiveSnapshot(ctx context.Context, assessment *models.Assessment) {
	objectName, err := uc.SnapshotStorage.StoreAssessmentSnapshot(ctx, assessment)
	if err != nil {
		uc.Log.Warn("assessment snapshot not archived",
			zap.String(constvars.LoggingAssessmentIDKey, assessment.ID),
			zap.Error(err),
		)
		return
	}
	uc.Log.Info("assessment archived",
		zap.String(constvars.LoggingAssessmentIDKey, assessment.ID),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)
}

// hasBandsFor reports whether the instrument declares any interpretation band
// for the subscale. Subscale bands are optional; a score falling in a gap of
// declared bands is a warning, a subscale with no bands at all is not.
func hasBandsFor(instrument *models.InstrumentDefinition, subscaleID string) bool {
	for _, band := range instrument.InterpretationBands {
		if band.Subscale == subscaleID {
			return true
		}
	}
	return false
}

func assessmentDetail(assessment *models.Assessment) *responses.AssessmentDetail {
	return &responses.AssessmentDetail{
		Assessment:        assessment,
		DisplayCompletion: clinimetrix.DisplayPercentage(assessment.CompletionPercentage),
	}
}
