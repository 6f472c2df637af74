package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"modelbench/adapters/sniffer"
	"modelbench/app"
	"modelbench/domain/account"
	"modelbench/domain/core"
	"modelbench/domain/history"
	"modelbench/domain/training"
	"modelbench/internal"
	apperrors "modelbench/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockModelAPI struct {
	mock.Mock
}

func (m *mockModelAPI) Login(ctx context.Context, creds account.Credentials) error {
	return m.Called(ctx, creds).Error(0)
}

func (m *mockModelAPI) Signup(ctx context.Context, creds account.Credentials) error {
	return m.Called(ctx, creds).Error(0)
}

func (m *mockModelAPI) Train(ctx context.Context, job training.Job) (*training.Result, error) {
	args := m.Called(ctx, job)
	if r := args.Get(0); r != nil {
		return r.(*training.Result), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockModelAPI) SaveResult(ctx context.Context, run training.SavedRun) error {
	return m.Called(ctx, run).Error(0)
}

func (m *mockModelAPI) History(ctx context.Context, username string) ([]history.Record, error) {
	args := m.Called(ctx, username)
	if r := args.Get(0); r != nil {
		return r.([]history.Record), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockModelAPI) ClearHistory(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

func newTestServer(api *mockModelAPI, maxUpload int64) http.Handler {
	logger := internal.NewLogger(internal.LogLevelError, "text", &bytes.Buffer{})
	datasets := app.NewDatasetService(sniffer.New(sniffer.Options{}), app.DatasetServiceConfig{
		MaxFileSize:     maxUpload,
		MaxConcurrent:   2,
		PreviewRowLimit: 2,
	}, logger)

	return NewServer(Services{
		Accounts: app.NewAccountService(api, logger),
		Datasets: datasets,
		Training: app.NewTrainingService(datasets, api, logger),
		History:  app.NewHistoryService(api, logger),
	}, maxUpload, logger).Handler()
}

func multipartRequest(t *testing.T, url, fileName string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if fileName != "" {
		part, err := w.CreateFormFile("dataset", fileName)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(&mockModelAPI{}, 1<<20).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestListModels(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(&mockModelAPI{}, 1<<20).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/models", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Models []struct {
			Name string `json:"name"`
			Slug string `json:"slug"`
		} `json:"models"`
		NetworkDefaults struct {
			Epochs int `json:"epochs"`
		} `json:"network_defaults"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Models, 8)
	assert.Equal(t, "linear-regression", body.Models[0].Slug)
	assert.Equal(t, 50, body.NetworkDefaults.Epochs)
}

func TestPreview(t *testing.T) {
	rec := httptest.NewRecorder()
	req := multipartRequest(t, "/api/datasets/preview", "data.csv", []byte("a,b\n1,2\n3,4\n5"), nil)
	newTestServer(&mockModelAPI{}, 1<<20).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var preview struct {
		UploadID  string              `json:"upload_id"`
		Columns   []string            `json:"columns"`
		Rows      []map[string]string `json:"rows"`
		TotalRows int                 `json:"total_rows"`
		Truncated bool                `json:"truncated"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &preview))
	assert.NotEmpty(t, preview.UploadID)
	assert.Equal(t, []string{"a", "b"}, preview.Columns)
	assert.Equal(t, []map[string]string{{"a": "1", "b": "2"}, {"a": "3", "b": "4"}}, preview.Rows)
	assert.Equal(t, 3, preview.TotalRows)
	assert.True(t, preview.Truncated)
}

func TestPreviewErrors(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		data   []byte
		status int
		code   string
	}{
		{"unsupported", "notes.pdf", []byte("%PDF"), http.StatusUnsupportedMediaType, apperrors.CodeUnsupportedFormat},
		{"corrupt workbook", "book.xlsx", []byte("not a zip"), http.StatusUnprocessableEntity, apperrors.CodeDecodeError},
		{"missing file", "", nil, http.StatusBadRequest, apperrors.CodeInvalidInput},
		{"too large", "big.csv", []byte(strings.Repeat("a,b\n", 64)), http.StatusRequestEntityTooLarge, apperrors.CodeTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := multipartRequest(t, "/api/datasets/preview", tt.file, tt.data, nil)
			newTestServer(&mockModelAPI{}, 100).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestPreviewRejectsNonMultipart(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/datasets/preview", strings.NewReader("a,b"))
	req.Header.Set("Content-Type", "text/csv")
	newTestServer(&mockModelAPI{}, 1<<20).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrain(t *testing.T) {
	api := &mockModelAPI{}
	api.On("Train", mock.Anything, mock.MatchedBy(func(job training.Job) bool {
		return job.Model.Slug == "svm" && job.TargetColumn == "b"
	})).Return(&training.Result{Model: "Support Vector Machine (SVM)", Metrics: map[string]any{"accuracy": 1.0}}, nil)
	api.On("SaveResult", mock.Anything, mock.MatchedBy(func(run training.SavedRun) bool {
		return run.Username == "ada" && run.DatasetName == "data.csv"
	})).Return(nil)

	rec := httptest.NewRecorder()
	req := multipartRequest(t, "/api/models/svm/train", "data.csv", []byte("a,b\n1,0\n2,1"), map[string]string{
		"target_column": "b",
		"username":      "ada",
	})
	newTestServer(api, 1<<20).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var run training.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.True(t, run.Saved)
	assert.Equal(t, "Support Vector Machine (SVM)", run.Model)
	assert.Equal(t, 1.0, run.Result.Metrics["accuracy"])
	api.AssertExpectations(t)
}

func TestTrainErrors(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		fields map[string]string
		status int
	}{
		{"unknown model", "/api/models/k-means/train", map[string]string{"target_column": "b"}, http.StatusNotFound},
		{"unknown target", "/api/models/svm/train", map[string]string{"target_column": "z"}, http.StatusNotFound},
		{"malformed model config", "/api/models/deep-neural-network/train", map[string]string{"target_column": "b", "model_config": "{"}, http.StatusBadRequest},
		{"invalid model config", "/api/models/deep-neural-network/train", map[string]string{"target_column": "b", "model_config": `{"layers":[],"learning_rate":0.01,"epochs":1,"batch_size":1,"problem_type":"regression"}`}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockModelAPI{}
			rec := httptest.NewRecorder()
			req := multipartRequest(t, tt.url, "data.csv", []byte("a,b\n1,0"), tt.fields)
			newTestServer(api, 1<<20).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			api.AssertNotCalled(t, "Train", mock.Anything, mock.Anything)
		})
	}
}

func TestTrainUpstreamFailure(t *testing.T) {
	api := &mockModelAPI{}
	api.On("Train", mock.Anything, mock.Anything).Return(nil, core.NewUpstreamError("Target column must be numeric"))

	rec := httptest.NewRecorder()
	req := multipartRequest(t, "/api/models/linear-regression/train", "data.csv", []byte("a,b\n1,x"), map[string]string{"target_column": "b"})
	newTestServer(api, 1<<20).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, apperrors.CodeExternalService, resp.Code)
	assert.Contains(t, resp.Error, "Target column must be numeric")
}

func TestComparisons(t *testing.T) {
	api := &mockModelAPI{}
	api.On("History", mock.Anything, "ada").Return([]history.Record{
		{DatasetName: "a.csv", Model: "SVM"},
		{Model: "Bagging"},
	}, nil)

	rec := httptest.NewRecorder()
	newTestServer(api, 1<<20).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history/ada/comparisons", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var cmp app.Comparisons
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cmp))
	require.Len(t, cmp.Groups, 2)
	assert.Equal(t, history.UnknownDataset, cmp.Groups[1].DatasetName)
}

func TestClearHistory(t *testing.T) {
	api := &mockModelAPI{}
	api.On("ClearHistory", mock.Anything, "ada").Return(nil).Once()

	rec := httptest.NewRecorder()
	newTestServer(api, 1<<20).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/history/ada", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cleared for ada")
	api.AssertExpectations(t)
}

func jsonRequest(method, url, body string) *http.Request {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestLogin(t *testing.T) {
	api := &mockModelAPI{}
	api.On("Login", mock.Anything, account.Credentials{Username: "ada", Password: "pw"}).Return(nil)

	rec := httptest.NewRecorder()
	newTestServer(api, 1<<20).ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/login", `{"username":" ada ","password":"pw"}`))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"username":"ada"}`, rec.Body.String())
	api.AssertExpectations(t)
}

func TestLoginErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		apiErr error
		status int
		code   string
	}{
		{"wrong password", `{"username":"ada","password":"bad"}`, core.ErrUnauthorized, http.StatusUnauthorized, apperrors.CodeUnauthorized},
		{"malformed body", `{"username":`, nil, http.StatusBadRequest, apperrors.CodeValidationError},
		{"missing password", `{"username":"ada"}`, nil, http.StatusBadRequest, apperrors.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockModelAPI{}
			if tt.apiErr != nil {
				api.On("Login", mock.Anything, mock.Anything).Return(tt.apiErr)
			}

			rec := httptest.NewRecorder()
			newTestServer(api, 1<<20).ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/login", tt.body))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}

func TestSignup(t *testing.T) {
	api := &mockModelAPI{}
	api.On("Signup", mock.Anything, account.Credentials{Username: "grace", Password: "pw"}).Return(nil)
	api.On("Signup", mock.Anything, account.Credentials{Username: "ada", Password: "pw"}).Return(core.ErrUsernameTaken)
	srv := newTestServer(api, 1<<20)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/signup", `{"username":"grace","password":"pw"}`))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"username":"grace"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/signup", `{"username":"ada","password":"pw"}`))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apperrors.CodeConflict, decodeError(t, rec).Code)
}

func TestUnknownRouteIsJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(&mockModelAPI{}, 1<<20).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nothing-here", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, apperrors.CodeNotFound, resp.Code)
	assert.Equal(t, "route /api/nothing-here not found", resp.Error)
}

func TestTrainMalformedModelConfigCode(t *testing.T) {
	rec := httptest.NewRecorder()
	req := multipartRequest(t, "/api/models/deep-neural-network/train", "data.csv", []byte("a,b\n1,0"), map[string]string{
		"target_column": "b",
		"model_config":  "{",
	})
	newTestServer(&mockModelAPI{}, 1<<20).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperrors.CodeValidationError, decodeError(t, rec).Code)
}
