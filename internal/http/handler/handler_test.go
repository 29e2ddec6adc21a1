package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"casillero/internal/model"
	"casillero/internal/repository"
	"casillero/internal/service"
	serviceMocks "casillero/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDownloadDecision(t *testing.T) {
	mockSvc := new(serviceMocks.MockDecisionService)
	app := fiber.New()
	app.Get("/descargar/:ndetalle", DownloadDecision(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("ResolveDownload", mock.Anything, "2023-001").
			Return("https://storage.example.com/signed", nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/descargar/2023-001", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "https://storage.example.com/signed", body["url"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("ResolveDownload", mock.Anything, "missing").
			Return("", service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/descargar/missing", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("ResolveDownload", mock.Anything, "2023-002").
			Return("", errors.New("presign fail")).Once()

		req := httptest.NewRequest(http.MethodGet, "/descargar/2023-002", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestListFilters(t *testing.T) {
	mockSvc := new(serviceMocks.MockDecisionService)
	app := fiber.New()
	app.Get("/filters", ListFilters(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("FilterValues", mock.Anything).Return(&model.FilterValues{
			OrganCodes:   []string{"01", "02"},
			AppealCodes:  []string{"ACA", "APN"},
			Specialties:  []string{"CIVIL", "PENAL"},
			OrganDetails: []string{"SALA CIVIL", "SALA PENAL"},
			JudgeNames:   []string{"GARCIA", "ZAPATA"},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/filters", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		// Decode into a plain map to pin the wire-level field names.
		var body map[string][]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, []string{"01", "02"}, body["codigo_organo"])
		assert.Equal(t, []string{"ACA", "APN"}, body["codigo_recurso"])
		assert.Equal(t, []string{"CIVIL", "PENAL"}, body["especialidad_expe"])
		assert.Equal(t, []string{"SALA CIVIL", "SALA PENAL"}, body["organo_detalle"])
		assert.Equal(t, []string{"GARCIA", "ZAPATA"}, body["nombre_juez"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("FilterValues", mock.Anything).Return(nil, errors.New("db fail")).Once()

		req := httptest.NewRequest(http.MethodGet, "/filters", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestSearchDecisions(t *testing.T) {
	mockSvc := new(serviceMocks.MockDecisionService)
	app := fiber.New()
	app.Get("/search", SearchDecisions(mockSvc))

	t.Run("success with filters", func(t *testing.T) {
		wantFilters := repository.SearchFilters{OrganCode: "01", JudgeName: "GARCIA"}
		mockSvc.On("Search", mock.Anything, wantFilters, 5, 10).
			Return(&service.SearchResult{
				TotalCount: 12,
				Items: map[string]*string{
					"2023-001": strPtr("sentencias/2023-001.pdf"),
					"2023-002": nil,
				},
			}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/search?codigo_organo=01&nombre_juez=GARCIA&limit=5&offset=10", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.SearchResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, 12, result.TotalCount)
		assert.Len(t, result.Items, 2)
		assert.Equal(t, "sentencias/2023-001.pdf", *result.Items["2023-001"])
		assert.Nil(t, result.Items["2023-002"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("default limit and offset", func(t *testing.T) {
		mockSvc.On("Search", mock.Anything, repository.SearchFilters{}, 10, 0).
			Return(&service.SearchResult{TotalCount: 0, Items: map[string]*string{}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/search", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty filter values are not applied", func(t *testing.T) {
		mockSvc.On("Search", mock.Anything, repository.SearchFilters{}, 10, 0).
			Return(&service.SearchResult{TotalCount: 0, Items: map[string]*string{}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/search?codigo_organo=&nombre_juez=", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/search?limit=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_LIMIT", body.Error.Code)
	})

	t.Run("invalid offset", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/search?offset=xyz", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_OFFSET", body.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Search", mock.Anything, repository.SearchFilters{}, 10, 0).
			Return(nil, errors.New("db fail")).Once()

		req := httptest.NewRequest(http.MethodGet, "/search", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	mockSvc := new(serviceMocks.MockDecisionService)
	RegisterRoutes(app, nil, mockSvc)

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/search", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})
}
