package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
	"alfredoptarigan/resume-analyzer/internal/testutil"
	"alfredoptarigan/resume-analyzer/mocks"
)

func newTestApp(worker services.Worker) *fiber.App {
	return newTestAppWithTimeout(worker, 0)
}

func newTestAppWithTimeout(worker services.Worker, timeout time.Duration) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	extractHandler := NewExtractHandler(
		services.NewUploadReader(1024*1024),
		services.NewDocumentExtractor(services.NewPDFParserService(), services.NewDocxParserService()),
	)
	RegisterRoutes(app, extractHandler, NewAnalyzeHandler(worker, timeout))
	return app
}

func newUploadRequest(t *testing.T, field, filename, contentType string, content []byte) *http.Request {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func TestHandleExtract_PDF(t *testing.T) {
	app := newTestApp(new(mocks.MockWorker))
	pdf := testutil.BuildPDF([][]string{{"Jane Doe", "Python"}, {"Go"}})

	resp, err := app.Test(newUploadRequest(t, "resume", "resume.pdf", "application/pdf", pdf))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody[models.ExtractResponse](t, resp)
	assert.Equal(t, "Jane Doe PythonGo", body.Text)
	assert.Equal(t, models.MediaTypePDF, body.MediaType)
	assert.Equal(t, "resume.pdf", body.Filename)
	assert.Equal(t, 17, body.Characters)
}

func TestHandleExtract_DOCX(t *testing.T) {
	app := newTestApp(new(mocks.MockWorker))
	docx := testutil.BuildDOCX(`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>`)

	resp, err := app.Test(newUploadRequest(t, "resume", "resume.docx", models.MediaTypeDOCX, docx))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Jane Doe\n\n", decodeBody[models.ExtractResponse](t, resp).Text)
}

func TestHandleExtract_Errors(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		contentType string
		content     []byte
		status      int
		kind        string
	}{
		{"unsupported type", "resume", "image/png", []byte("\x89PNG"), fiber.StatusUnsupportedMediaType, "unsupported_format"},
		{"corrupt pdf", "resume", "application/pdf", []byte("not really a pdf file at all"), fiber.StatusUnprocessableEntity, "parse"},
		{"wrong field", "cv", "application/pdf", []byte("%PDF-1.4"), fiber.StatusBadRequest, "file_read"},
		{"too large", "resume", "application/pdf", bytes.Repeat([]byte("a"), 1024*1024+1), fiber.StatusRequestEntityTooLarge, "file_read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(new(mocks.MockWorker))

			resp, err := app.Test(newUploadRequest(t, tt.field, "upload", tt.contentType, tt.content))

			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			body := decodeBody[models.ErrorResponse](t, resp)
			assert.Equal(t, tt.kind, body.Kind)
			assert.Equal(t, tt.status, body.Code)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func newAnalyzeRequest(t *testing.T, payload any) *http.Request {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandleAnalyze_Success(t *testing.T) {
	expected := &models.AnalysisResult{
		MatchScore:  88,
		Summary:     "Good fit.",
		Strengths:   []string{"Python", "Leadership"},
		Weaknesses:  []string{},
		Suggestions: []string{"Add metrics"},
	}
	mockWorker := new(mocks.MockWorker)
	mockWorker.On("Submit", mock.Anything, "resume text", "job text").Return(expected, nil)
	app := newTestApp(mockWorker)

	resp, err := app.Test(newAnalyzeRequest(t, models.AnalyzeRequest{
		ResumeText:     "resume text",
		JobDescription: "job text",
	}))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody[models.AnalyzeResponse](t, resp)
	_, err = uuid.Parse(body.ID)
	assert.NoError(t, err)
	assert.Equal(t, expected, body.Result)
	mockWorker.AssertExpectations(t)
}

func TestHandleAnalyze_ResultUsesSchemaFieldNames(t *testing.T) {
	mockWorker := new(mocks.MockWorker)
	mockWorker.On("Submit", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.AnalysisResult{MatchScore: 10, Strengths: []string{}, Weaknesses: []string{}, Suggestions: []string{}}, nil)
	app := newTestApp(mockWorker)

	resp, err := app.Test(newAnalyzeRequest(t, fiber.Map{"resume_text": "a", "job_description": "b"}))

	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	for _, field := range []string{`"matchScore":10`, `"summary"`, `"strengths":[]`, `"weaknesses":[]`, `"suggestions":[]`} {
		assert.Contains(t, string(raw), field)
	}
}

func TestHandleAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"validation", services.ErrValidation, fiber.StatusBadRequest, "validation"},
		{"service", fmt.Errorf("%w: %w", services.ErrAIRequest, errors.New("quota exceeded")), fiber.StatusBadGateway, "ai_request"},
		{"malformed", fmt.Errorf("%w: matchScore is missing", services.ErrMalformedResponse), fiber.StatusBadGateway, "malformed_response"},
		{"stopped", services.ErrWorkerStopped, fiber.StatusServiceUnavailable, "internal"},
		{"deadline", context.DeadlineExceeded, fiber.StatusRequestTimeout, "internal"},
		{"cancelled", context.Canceled, fiber.StatusRequestTimeout, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWorker := new(mocks.MockWorker)
			mockWorker.On("Submit", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)
			app := newTestApp(mockWorker)

			resp, err := app.Test(newAnalyzeRequest(t, models.AnalyzeRequest{ResumeText: "r", JobDescription: "j"}))

			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			body := decodeBody[models.ErrorResponse](t, resp)
			assert.Equal(t, tt.kind, body.Kind)
			assert.True(t, strings.HasPrefix(body.Error, "analysis failed: "), body.Error)
			assert.Contains(t, body.Error, tt.err.Error())
		})
	}
}

func TestHandleAnalyze_DeadlineReachesWorker(t *testing.T) {
	mockWorker := new(mocks.MockWorker)
	mockWorker.On("Submit", mock.Anything, "r", "j").
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.DeadlineExceeded)
	app := newTestAppWithTimeout(mockWorker, 50*time.Millisecond)

	resp, err := app.Test(newAnalyzeRequest(t, models.AnalyzeRequest{ResumeText: "r", JobDescription: "j"}), 2000)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusRequestTimeout, resp.StatusCode)
	mockWorker.AssertExpectations(t)
}

func TestHandleAnalyze_InvalidPayload(t *testing.T) {
	mockWorker := new(mocks.MockWorker)
	app := newTestApp(mockWorker)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	mockWorker.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func TestHealth(t *testing.T) {
	app := newTestApp(new(mocks.MockWorker))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", decodeBody[map[string]any](t, resp)["status"])
}

func TestErrorHandler_EntityTooLarge(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Post("/upload", func(c *fiber.Ctx) error {
		return fiber.ErrRequestEntityTooLarge
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/upload", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
	body := decodeBody[models.ErrorResponse](t, resp)
	assert.Equal(t, fiber.StatusRequestEntityTooLarge, body.Code)
	assert.Equal(t, "file_read", body.Kind)
	assert.Equal(t, fiber.ErrRequestEntityTooLarge.Message, body.Error)
}
