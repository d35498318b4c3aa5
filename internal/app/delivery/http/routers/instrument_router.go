package routers

import (
	"fmt"

	"mindhub-service/internal/app/delivery/http/middlewares"
	"mindhub-service/internal/app/services/core/instruments"
	"mindhub-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachInstrumentRoutes(router chi.Router, writeLimiter *middlewares.RateLimiter, instrumentController *instruments.InstrumentController) {
	instrumentPath := fmt.Sprintf("/{%s}", constvars.URLParamInstrumentID)
	itemOptionsPath := fmt.Sprintf("/{%s}/items/{%s}/options", constvars.URLParamInstrumentID, constvars.URLParamItemNumber)
	subscaleInterpretationPath := fmt.Sprintf("/{%s}/subscales/{%s}/interpretation", constvars.URLParamInstrumentID, constvars.URLParamSubscaleID)

	router.With(writeLimiter.Limit).Post("/", instrumentController.CreateInstrument)
	router.Get("/", instrumentController.FindAll)
	router.Get(instrumentPath, instrumentController.FindByIDAndVersion)
	router.With(writeLimiter.Limit).Put(instrumentPath, instrumentController.UpdateInstrument)
	router.With(writeLimiter.Limit).Delete(instrumentPath, instrumentController.DeleteByIDAndVersion)
	router.Get(itemOptionsPath, instrumentController.ResolveItemOptions)
	router.Get(subscaleInterpretationPath, instrumentController.InterpretSubscale)
}
