package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"guillama/backend/internal/api"
	app_errors "guillama/backend/internal/errors"
	"guillama/backend/internal/interfaces/mocks"
	"guillama/backend/internal/llm"
	"guillama/backend/internal/service"
)

func setupModelHandler(t *testing.T) (*api.ModelHandler, *mocks.MockModelService) {
	mockModelSvc := mocks.NewMockModelService(t)
	handler := api.NewModelHandler(mockModelSvc)
	return handler, mockModelSvc
}

func TestModelHandler_HandleListModels(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockSvc := setupModelHandler(t)
		expectedResp := &service.ModelList{
			Names:     []string{"test-model"},
			Models:    []llm.Model{{Name: "test-model"}},
			FromCache: true,
		}
		mockSvc.On("List", mock.Anything).Return(expectedResp, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/models", nil)
		rr := httptest.NewRecorder()

		handler.HandleListModels(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp service.ModelList
		err := json.Unmarshal(rr.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.Equal(t, "test-model", resp.Names[0])
		assert.True(t, resp.FromCache)
	})

	t.Run("Failure", func(t *testing.T) {
		handler, mockSvc := setupModelHandler(t)
		mockSvc.On("List", mock.Anything).Return(nil, errors.New("internal error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/models", nil)
		rr := httptest.NewRecorder()

		handler.HandleListModels(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestModelHandler_HandleRefreshModels(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockSvc := setupModelHandler(t)
		mockSvc.On("Refresh", mock.Anything).Return(&service.ModelList{Names: []string{"a"}, Models: []llm.Model{{Name: "a"}}}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/models/refresh", nil)
		rr := httptest.NewRecorder()

		handler.HandleRefreshModels(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"names":["a"]`)
	})

	t.Run("Failure - Cache unreadable", func(t *testing.T) {
		handler, mockSvc := setupModelHandler(t)
		mockSvc.On("Refresh", mock.Anything).Return(nil, app_errors.ErrInternal).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/models/refresh", nil)
		rr := httptest.NewRecorder()

		handler.HandleRefreshModels(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestModelHandler_HandleStatus(t *testing.T) {
	handler, mockSvc := setupModelHandler(t)
	mockSvc.On("Status", mock.Anything).Return(&service.ServerStatus{Running: true, URL: "http://localhost:11434"}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/v1/status", nil)
	rr := httptest.NewRecorder()

	handler.HandleStatus(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"running":true,"url":"http://localhost:11434"}`, rr.Body.String())
}
