package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"dealchat/internal/app/storage"
	"dealchat/internal/pkg/errs"
	"dealchat/internal/pkg/logx"
	"dealchat/internal/pkg/req"
	"dealchat/internal/pkg/resp"
)

// HandleUpload accepts a multipart image upload, stores it in object storage
// under a random key and returns the public URL for use as a message locator.
func HandleUpload(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if customErr := req.SetupMultipart(w, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrFormParseFailed))
			return
		}
		defer file.Close()

		if customErr := storage.ValidateImageSize(header.Size); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		mimeType := header.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = storage.ExtToMIME[strings.ToLower(filepath.Ext(header.Filename))]
		}

		if customErr := storage.ValidateImageType(header.Filename, mimeType); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		fileExt := strings.ToLower(filepath.Ext(header.Filename))
		fileKey := uuid.New().String() + fileExt

		url, err := deps.StorageService.Upload(r.Context(), fileKey, mimeType, file)
		if err != nil {
			logx.Error(err, "image upload failed", "key", fileKey)
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"url": url,
		})
	}
}
