package http

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"kindnessconnect-backend/internal/domain"
)

// parseMultipart bounds the body at max bytes and parses it as multipart/form-data.
func parseMultipart(w http.ResponseWriter, r *http.Request, max int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, max)
	if err := r.ParseMultipartForm(max); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.Invalid("upload exceeds the size limit")
		}
		return domain.Invalid("invalid multipart form: " + err.Error())
	}
	return nil
}

// formUpload reads a single optional file field. A missing field yields an empty Upload.
func formUpload(r *http.Request, field string) (domain.Upload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return domain.Upload{}, nil
	}
	if err != nil {
		return domain.Upload{}, domain.Invalid("could not read " + field + ": " + err.Error())
	}
	defer file.Close()
	return readUpload(file, header)
}

// formUploads reads every file submitted under field, in submission order.
func formUploads(r *http.Request, field string) ([]domain.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	uploads := make([]domain.Upload, 0, len(headers))
	for _, fh := range headers {
		file, err := fh.Open()
		if err != nil {
			return nil, domain.Invalid("could not read " + field + ": " + err.Error())
		}
		u, err := readUpload(file, fh)
		file.Close()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, u)
	}
	return uploads, nil
}

func readUpload(file multipart.File, header *multipart.FileHeader) (domain.Upload, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return domain.Upload{}, domain.Invalid("could not read " + header.Filename + ": " + err.Error())
	}
	return domain.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func formFloat(r *http.Request, field string) (float64, error) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return 0, domain.Invalid(field + " is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, domain.Invalid(field + " must be a number")
	}
	return v, nil
}

// formBool parses an optional boolean field, returning def when it is absent.
func formBool(r *http.Request, field string, def bool) (bool, error) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, domain.Invalid(field + " must be true or false")
	}
	return v, nil
}
