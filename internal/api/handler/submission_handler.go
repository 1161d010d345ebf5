package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"filedrop/internal/app/service"
	"filedrop/internal/common"
	"filedrop/internal/platform/config"

	"github.com/go-chi/chi/v5"
)

type SubmissionHandler struct {
	submissionService *service.SubmissionService
	fileService       *service.FileService
}

func NewSubmissionHandler(ss *service.SubmissionService, fs *service.FileService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: ss, fileService: fs}
}

func (h *SubmissionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listSubmissions) // GET /api/submissions?eventId=
	r.Post("/", h.createSubmission)
}

func (h *SubmissionHandler) listSubmissions(w http.ResponseWriter, r *http.Request) {
	var eventID *int
	if v := r.URL.Query().Get("eventId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			common.RespondWithError(w, http.StatusBadRequest, "Invalid eventId")
			return
		}
		eventID = &id
	}

	submissions, err := h.submissionService.List(r.Context(), eventID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submissions)
}

// createSubmission takes a multipart form with submitter fields and up to
// MaxSubmissionFiles files[].
func (h *SubmissionHandler) createSubmission(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	eventID, err := strconv.Atoi(r.FormValue("eventId"))
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid eventId")
		return
	}

	req := service.CreateSubmissionRequest{
		EventID:             eventID,
		SubmitterName:       r.FormValue("submitterName"),
		SubmitterDepartment: r.FormValue("submitterDepartment"),
	}
	if v := r.FormValue("submitterContact"); v != "" {
		req.SubmitterContact = &v
	}

	uploads := r.MultipartForm.File["files"]
	if len(uploads) > config.AppConfig.MaxSubmissionFiles {
		common.RespondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("At most %d files per submission", config.AppConfig.MaxSubmissionFiles))
		return
	}
	for _, fh := range uploads {
		name, err := saveUpload(r.Context(), h.fileService, fh)
		if err != nil {
			common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
			return
		}
		req.Files = append(req.Files, name)
	}

	submission, err := h.submissionService.Create(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, submission)
}
