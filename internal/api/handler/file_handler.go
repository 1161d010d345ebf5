package handler

import (
	"fmt"
	"net/http"

	"filedrop/internal/app/service"
	"filedrop/internal/common"

	"github.com/go-chi/chi/v5"
)

type FileHandler struct {
	fileService *service.FileService
}

func NewFileHandler(fs *service.FileService) *FileHandler {
	return &FileHandler{fileService: fs}
}

func (h *FileHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{filename}", h.downloadFile) // GET /api/files/1693...-ab12cd34_report.pdf
}

func (h *FileHandler) downloadFile(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	file, err := h.fileService.Get(r.Context(), filename)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", service.OriginalName(file.Filename)))
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(file.Data)
}
