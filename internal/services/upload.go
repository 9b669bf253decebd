package services

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// UploadReader turns an uploaded multipart file into an in-memory document.
type UploadReader interface {
	ReadUpload(file *multipart.FileHeader) (*models.UploadedDocument, error)
}

type uploadReader struct {
	maxFileSize int64
}

func NewUploadReader(maxFileSize int64) UploadReader {
	return &uploadReader{
		maxFileSize: maxFileSize,
	}
}

func (u *uploadReader) ReadUpload(file *multipart.FileHeader) (*models.UploadedDocument, error) {
	if file == nil {
		return nil, fmt.Errorf("%w: no file provided", ErrFileRead)
	}

	if u.maxFileSize > 0 && file.Size > u.maxFileSize {
		return nil, fmt.Errorf("%w: %w: %d bytes exceeds limit of %d bytes",
			ErrFileRead, ErrFileTooLarge, file.Size, u.maxFileSize)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open uploaded file: %w", ErrFileRead, err)
	}
	defer src.Close()

	limit := u.maxFileSize
	if limit <= 0 {
		limit = file.Size
	}

	// Read one byte past the limit so a wrong Size header cannot smuggle in a larger body.
	content, err := io.ReadAll(io.LimitReader(src, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read uploaded file: %w", ErrFileRead, err)
	}
	if u.maxFileSize > 0 && int64(len(content)) > u.maxFileSize {
		return nil, fmt.Errorf("%w: %w: limit is %d bytes", ErrFileRead, ErrFileTooLarge, u.maxFileSize)
	}

	return &models.UploadedDocument{
		Filename:  file.Filename,
		MediaType: DeclaredMediaType(file.Header.Get("Content-Type")),
		Content:   content,
	}, nil
}

// DeclaredMediaType normalizes a Content-Type header value, dropping parameters.
// Unparseable values are returned lowercased and trimmed so they are reported
// as unsupported rather than silently accepted.
func DeclaredMediaType(contentType string) string {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(contentType)
	}
	return mediaType
}
