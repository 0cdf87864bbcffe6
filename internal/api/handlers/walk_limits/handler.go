package walk_limits

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WalkBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-WalkBookingService/internal/service/walklimits"
)

const (
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные лимита"
	msgNotFound           = "лимит на дату не задан"
)

type Handler struct {
	service WalkLimitService
	logger  Logger
}

func NewHandler(service WalkLimitService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/v1/admin/walk-limits/{date}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("GET /admin/walk-limits/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Get(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /admin/walk-limits/{date} - Failed to get limit: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// List GET /api/v1/admin/walk-limits?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	from, err := handlers.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		h.logger.Warn("GET /admin/walk-limits - Invalid 'from': %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	to, err := handlers.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /admin/walk-limits - Invalid 'to': %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.List(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, walklimits.ErrInvalidInput) {
			h.logger.Warn("GET /admin/walk-limits - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)
			return
		}
		h.logger.Error("GET /admin/walk-limits - Failed to list limits: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/walk-limits - Limits retrieved: count=%d", len(result.Overrides))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Put PUT /api/v1/admin/walk-limits/{date}
func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("PUT /admin/walk-limits/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req UpsertWalkLimitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/walk-limits/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), req.ToServiceRequest(date))
	if err != nil {
		if errors.Is(err, walklimits.ErrInvalidInput) {
			h.logger.Warn("PUT /admin/walk-limits/{date} - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)
			return
		}
		h.logger.Error("PUT /admin/walk-limits/{date} - Failed to save limit: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/walk-limits/{date} - Limit saved: date=%s, unlimited=%t", result.Date, result.Unlimited)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/admin/walk-limits/{date}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("DELETE /admin/walk-limits/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.Delete(r.Context(), date); err != nil {
		if errors.Is(err, walklimits.ErrOverrideNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /admin/walk-limits/{date} - Failed to delete limit: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/walk-limits/{date} - Limit removed: date=%s", date.Format("2006-01-02"))
	w.WriteHeader(http.StatusNoContent)
}
