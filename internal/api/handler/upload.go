package handler

import (
	"context"
	"io"
	"mime/multipart"

	"filedrop/internal/app/service"
	"filedrop/internal/common"
	"filedrop/internal/platform/config"
)

// multipartMemoryLimit is the in-memory buffer for multipart parsing;
// larger parts spill to temp files.
const multipartMemoryLimit = 32 << 20

// saveUpload enforces the per-file size cap and hands the bytes to the blob
// manager, returning the assigned storage name.
func saveUpload(ctx context.Context, files *service.FileService, fh *multipart.FileHeader) (string, error) {
	if fh.Size > config.AppConfig.MaxUploadBytes() {
		return "", common.Errorf("file %q exceeds the %dMB limit: %w",
			fh.Filename, config.AppConfig.MaxUploadMB, common.ErrValidation)
	}

	f, err := fh.Open()
	if err != nil {
		return "", common.Errorf("failed to open upload %q: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", common.Errorf("failed to read upload %q: %w", fh.Filename, err)
	}

	var mimeType *string
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		mimeType = &ct
	}
	return files.Save(ctx, fh.Filename, mimeType, data)
}
