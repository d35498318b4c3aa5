package instruments

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"mindhub-service/internal/app/contracts"
	"mindhub-service/internal/app/models"
	"mindhub-service/internal/pkg/constvars"
	"mindhub-service/internal/pkg/exceptions"
	"mindhub-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type InstrumentController struct {
	Log               *zap.Logger
	InstrumentUsecase contracts.InstrumentUsecase
}

func NewInstrumentController(logger *zap.Logger, instrumentUsecase contracts.InstrumentUsecase) *InstrumentController {
	return &InstrumentController{
		Log:               logger,
		InstrumentUsecase: instrumentUsecase,
	}
}

func (ctrl *InstrumentController) CreateInstrument(w http.ResponseWriter, r *http.Request) {
	request := new(models.InstrumentDefinition)
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

	result, err := ctrl.InstrumentUsecase.CreateInstrument(ctx, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateInstrumentSuccessMessage, result)
}

func (ctrl *InstrumentController) FindAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.InstrumentUsecase.FindAll(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetInstrumentsSuccessMessage, result)
}

func (ctrl *InstrumentController) FindByIDAndVersion(w http.ResponseWriter, r *http.Request) {
	instrumentID := chi.URLParam(r, constvars.URLParamInstrumentID)
	version := r.URL.Query().Get(constvars.URLQueryParamVersion)
	if instrumentID == "" || version == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.URLParamInstrumentID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.InstrumentUsecase.FindByIDAndVersion(ctx, instrumentID, version)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetInstrumentSuccessMessage, result)
}

func (ctrl *InstrumentController) UpdateInstrument(w http.ResponseWriter, r *http.Request) {
	instrumentID := chi.URLParam(r, constvars.URLParamInstrumentID)

	request := new(models.InstrumentDefinition)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.ID = instrumentID

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.InstrumentUsecase.UpdateInstrument(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateInstrumentSuccessMessage, result)
}

func (ctrl *InstrumentController) DeleteByIDAndVersion(w http.ResponseWriter, r *http.Request) {
	instrumentID := chi.URLParam(r, constvars.URLParamInstrumentID)
	version := r.URL.Query().Get(constvars.URLQueryParamVersion)
	if instrumentID == "" || version == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.URLParamInstrumentID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := ctrl.InstrumentUsecase.DeleteByIDAndVersion(ctx, instrumentID, version)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteInstrumentSuccessMessage, nil)
}

func (ctrl *InstrumentController) ResolveItemOptions(w http.ResponseWriter, r *http.Request) {
	instrumentID := chi.URLParam(r, constvars.URLParamInstrumentID)
	version := r.URL.Query().Get(constvars.URLQueryParamVersion)
	itemNumber, err := strconv.Atoi(chi.URLParam(r, constvars.URLParamItemNumber))
	if err != nil || instrumentID == "" || version == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLParamItemNumber))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.InstrumentUsecase.ResolveItemOptions(ctx, instrumentID, version, itemNumber)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResolveOptionsSuccessMessage, result)
}

func (ctrl *InstrumentController) InterpretSubscale(w http.ResponseWriter, r *http.Request) {
	instrumentID := chi.URLParam(r, constvars.URLParamInstrumentID)
	subscaleID := chi.URLParam(r, constvars.URLParamSubscaleID)
	version := r.URL.Query().Get(constvars.URLQueryParamVersion)
	score, err := strconv.ParseFloat(r.URL.Query().Get(constvars.URLQueryParamScore), 64)
	if err != nil || instrumentID == "" || subscaleID == "" || version == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLQueryParamScore))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.InstrumentUsecase.InterpretSubscaleScore(ctx, instrumentID, version, subscaleID, score)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.InterpretSubscaleSuccess, result)
}
