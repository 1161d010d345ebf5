package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"filedrop/internal/app/service"
	"filedrop/internal/common"
	"filedrop/internal/platform/config"

	"github.com/go-chi/chi/v5"
)

type EventHandler struct {
	eventService *service.EventService
	fileService  *service.FileService
}

func NewEventHandler(es *service.EventService, fs *service.FileService) *EventHandler {
	return &EventHandler{eventService: es, fileService: fs}
}

func (h *EventHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listEvents)          // GET /api/events
	r.Get("/{eventID}", h.getEvent)   // GET /api/events/42
	r.Post("/", h.createEvent)        // POST /api/events (admin)
	r.Patch("/{eventID}", h.updateEvent)
}

func (h *EventHandler) listEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.List(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, events)
}

func (h *EventHandler) getEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "eventID"))
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid event id")
		return
	}
	event, err := h.eventService.Get(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, event)
}

type createEventJSON struct {
	Password              string    `json:"password"`
	Title                 string    `json:"title"`
	Description           string    `json:"description"`
	Deadline              time.Time `json:"deadline"`
	IsActive              *bool     `json:"isActive"`
	InitialFiles          []string  `json:"initialFiles"`
	InitialStoragePath    *string   `json:"initialStoragePath"`
	SubmissionStoragePath *string   `json:"submissionStoragePath"`
}

// createEvent accepts either plain JSON or a multipart form carrying
// initialFiles[]. Both variants must present the admin password.
func (h *EventHandler) createEvent(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		h.createEventMultipart(w, r)
		return
	}

	var req createEventJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if req.Password != config.AppConfig.AdminPassword {
		common.RespondWithError(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	event, err := h.eventService.Create(r.Context(), service.CreateEventRequest{
		Title:                 req.Title,
		Description:           req.Description,
		Deadline:              req.Deadline,
		IsActive:              req.IsActive,
		InitialFiles:          req.InitialFiles,
		InitialStoragePath:    req.InitialStoragePath,
		SubmissionStoragePath: req.SubmissionStoragePath,
	})
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) createEventMultipart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	if r.FormValue("password") != config.AppConfig.AdminPassword {
		common.RespondWithError(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	req := service.CreateEventRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if v := r.FormValue("deadline"); v != "" {
		deadline, err := time.Parse(time.RFC3339, v)
		if err != nil {
			common.RespondWithError(w, http.StatusBadRequest, "Invalid deadline: "+err.Error())
			return
		}
		req.Deadline = deadline
	}
	if v := r.FormValue("isActive"); v != "" {
		isActive := v == "true"
		req.IsActive = &isActive
	}
	if v := r.FormValue("initialStoragePath"); v != "" {
		req.InitialStoragePath = &v
	}
	if v := r.FormValue("submissionStoragePath"); v != "" {
		req.SubmissionStoragePath = &v
	}

	for _, fh := range r.MultipartForm.File["initialFiles"] {
		name, err := saveUpload(r.Context(), h.fileService, fh)
		if err != nil {
			common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
			return
		}
		req.InitialFiles = append(req.InitialFiles, name)
	}

	event, err := h.eventService.Create(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) updateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "eventID"))
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid event id")
		return
	}

	var req service.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	event, err := h.eventService.Update(r.Context(), id, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, event)
}
