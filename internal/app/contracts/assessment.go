package contracts

import (
	"context"

	"mindhub-service/internal/app/models"
	"mindhub-service/internal/pkg/dto/requests"
	"mindhub-service/internal/pkg/dto/responses"
)

type AssessmentRepository interface {
	CreateAssessment(ctx context.Context, assessment *models.Assessment) (string, error)
	FindAssessmentByID(ctx context.Context, assessmentID string) (*models.Assessment, error)
	FindAssessmentsBySubject(ctx context.Context, subjectReference string) ([]models.Assessment, error)
	UpdateAssessment(ctx context.Context, assessment *models.Assessment) error
	DeleteAssessmentByID(ctx context.Context, assessmentID string) error
}

type AssessmentUsecase interface {
	StartAssessment(ctx context.Context, request *requests.StartAssessment) (*models.Assessment, error)
	SubmitResponses(ctx context.Context, assessmentID string, request *requests.SubmitResponses) (*responses.AssessmentDetail, error)
	FindAssessmentByID(ctx context.Context, assessmentID string) (*responses.AssessmentDetail, error)
	FindAssessmentsBySubject(ctx context.Context, subjectReference string) ([]responses.AssessmentDetail, error)
	ValidateAssessment(ctx context.Context, assessmentID string) (*responses.ValidationResult, error)
	AdvancedScore(ctx context.Context, assessmentID string, request *requests.AdvancedScore) (*responses.AdvancedScoreResult, error)
	FinalizeAssessment(ctx context.Context, assessmentID string) (*responses.AssessmentDetail, error)
	RescoreAssessment(ctx context.Context, assessmentID string, request *requests.RescoreAssessment) (*responses.AssessmentDetail, error)
	DeleteAssessmentByID(ctx context.Context, assessmentID string) error
}
