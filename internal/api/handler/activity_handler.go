package handler

import (
	"net/http"
	"strconv"

	"filedrop/internal/app/service"
	"filedrop/internal/common"

	"github.com/go-chi/chi/v5"
)

type ActivityHandler struct {
	activityService *service.ActivityService
}

func NewActivityHandler(as *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: as}
}

func (h *ActivityHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listActivities) // GET /api/activities?limit=
}

func (h *ActivityHandler) listActivities(w http.ResponseWriter, r *http.Request) {
	limit := 0 // service applies the default
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			common.RespondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	activities, err := h.activityService.Recent(r.Context(), limit)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, activities)
}
