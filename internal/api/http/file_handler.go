package http

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"kindnessconnect-backend/internal/logger"
	"kindnessconnect-backend/internal/storage"
)

// RegisterFileRoutes serves files kept by a local storage backend at /files/{key}.
func RegisterFileRoutes(r *mux.Router, files storage.FileReader) {
	r.HandleFunc("/files/{key:.*}", func(w http.ResponseWriter, req *http.Request) {
		key := mux.Vars(req)["key"]

		file, contentType, err := files.ReadFile(key)
		if err != nil {
			logger.Debug("File not served", "key", key, "error", err)
			writeJSON(w, http.StatusNotFound, errorResponse{Detail: "file not found"})
			return
		}
		defer file.Close()

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=31536000")
		if _, err := io.Copy(w, file); err != nil {
			logger.Warn("Failed to stream file", "key", key, "error", err)
		}
	}).Methods(http.MethodGet).Name("Download")
}
