package assessments

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"mindhub-service/internal/app/contracts"
	"mindhub-service/internal/pkg/constvars"
	"mindhub-service/internal/pkg/dto/requests"
	"mindhub-service/internal/pkg/exceptions"
	"mindhub-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AssessmentController struct {
	Log               *zap.Logger
	AssessmentUsecase contracts.AssessmentUsecase
}

func NewAssessmentController(logger *zap.Logger, assessmentUsecase contracts.AssessmentUsecase) *AssessmentController {
	return &AssessmentController{
		Log:               logger,
		AssessmentUsecase: assessmentUsecase,
	}
}

func (ctrl *AssessmentController) StartAssessment(w http.ResponseWriter, r *http.Request) {
	request := new(requests.StartAssessment)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.AssessmentUsecase.StartAssessment(ctx, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.StartAssessmentSuccessMessage, result)
}

func (ctrl *AssessmentController) SubmitResponses(w http.ResponseWriter, r *http.Request) {
	assessmentID := chi.URLParam(r, constvars.URLParamAssessmentID)

	request := new(requests.SubmitResponses)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.AssessmentUsecase.SubmitResponses(ctx, assessmentID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SubmitResponsesSuccessMessage, result)
}

func (ctrl *AssessmentController) FindAssessmentByID(w http.ResponseWriter, r *http.Request) {
	assessmentID := chi.URLParam(r, constvars.URLParamAssessmentID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.AssessmentUsecase.FindAssessmentByID(ctx, assessmentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAssessmentSuccessMessage, result)
}

func (ctrl *AssessmentController) FindAssessmentsBySubject(w http.ResponseWriter, r *http.Request) {
	subjectReference := r.URL.Query().Get(constvars.URLQueryParamSubject)
	if subjectReference == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.URLQueryParamSubject))
		return
	}

	page, pageSize := parsePagination(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.AssessmentUsecase.FindAssessmentsBySubject(ctx, subjectReference)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	total := len(result)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	pagination := utils.BuildPaginationResponse(total, page, pageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetAssessmentSuccessMessage, pagination, result[start:end])
}

func parsePagination(r *http.Request) (page, pageSize int) {
	page, _ = strconv.Atoi(r.URL.Query().Get(constvars.URLQueryParamPage))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(r.URL.Query().Get(constvars.URLQueryParamPageSize))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func (ctrl *AssessmentController) ValidateAssessment(w http.ResponseWriter, r *http.Request) {
	assessmentID := chi.URLParam(r, constvars.URLParamAssessmentID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.AssessmentUsecase.ValidateAssessment(ctx, assessmentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ValidateAssessmentSuccess, result)
}

func (ctrl *AssessmentController) AdvancedScore(w http.ResponseWriter, r *http.Request) {
	assessmentID := chi.URLParam(r, constvars.URLParamAssessmentID)

	request := new(requests.AdvancedScore)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	// Normative lookups cross a network boundary, give them a bit longer.
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	result, err := ctrl.AssessmentUsecase.AdvancedScore(ctx, assessmentID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AdvancedScoreSuccessMessage, result)
}

func (ctrl *AssessmentController) FinalizeAssessment(w http.ResponseWriter, r *http.Request) {
	assessmentID := chi.URLParam(r, constvars.URLParamAssessmentID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.AssessmentUsecase.FinalizeAssessment(ctx, assessmentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FinalizeAssessmentSuccess, result)
}

func (ctrl *AssessmentController) RescoreAssessment(w http.ResponseWriter, r *http.Request) {
	assessmentID := chi.URLParam(r, constvars.URLParamAssessmentID)

	request := new(requests.RescoreAssessment)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.AssessmentUsecase.RescoreAssessment(ctx, assessmentID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RescoreAssessmentSuccessMessage, result)
}

func (ctrl *AssessmentController) DeleteAssessmentByID(w http.ResponseWriter, r *http.Request) {
	assessmentID := chi.URLParam(r, constvars.URLParamAssessmentID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := ctrl.AssessmentUsecase.DeleteAssessmentByID(ctx, assessmentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteAssessmentSuccessMessage, nil)
}
