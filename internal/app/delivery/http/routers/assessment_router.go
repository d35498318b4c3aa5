package routers

import (
	"fmt"

	"mindhub-service/internal/app/delivery/http/middlewares"
	"mindhub-service/internal/app/services/core/assessments"
	"mindhub-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAssessmentRoutes(router chi.Router, writeLimiter *middlewares.RateLimiter, assessmentController *assessments.AssessmentController) {
	assessmentPath := fmt.Sprintf("/{%s}", constvars.URLParamAssessmentID)

	router.With(writeLimiter.Limit).Post("/", assessmentController.StartAssessment)
	router.Get("/", assessmentController.FindAssessmentsBySubject)
	router.Get(assessmentPath, assessmentController.FindAssessmentByID)
	router.With(writeLimiter.Limit).Put(assessmentPath+"/responses", assessmentController.SubmitResponses)
	router.Get(assessmentPath+"/validation", assessmentController.ValidateAssessment)
	router.Post(assessmentPath+"/advanced-score", assessmentController.AdvancedScore)
	router.With(writeLimiter.Limit).Post(assessmentPath+"/finalize", assessmentController.FinalizeAssessment)
	router.With(writeLimiter.Limit).Post(assessmentPath+"/rescore", assessmentController.RescoreAssessment)
	router.With(writeLimiter.Limit).Delete(assessmentPath, assessmentController.DeleteAssessmentByID)
}
