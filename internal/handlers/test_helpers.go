package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/models"
	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/services"
	pkghttp "github.com/bugrabasbostanci/funny-yellow-sub001/pkg/http"
	"github.com/stretchr/testify/assert"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// AssertJSONResponse checks status and decodes the JSON body into target.
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	if target != nil {
		err := json.Unmarshal(w.Body.Bytes(), target)
		assert.NoError(t, err, "Failed to decode response JSON")
	}
}

// AssertErrorResponse checks that response is a valid error response
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err, "Failed to decode error response")
	assert.Equal(t, expectedError, resp.Error, "Error code mismatch")
	assert.NotEmpty(t, resp.Message, "Error message should not be empty")
}

// MockAuthService implements AuthServiceInterface for testing
type MockAuthService struct {
	LoginFunc func(ctx context.Context, origin, username, password string) (*services.AuthResponse, error)
}

func (m *MockAuthService) Login(ctx context.Context, origin, username, password string) (*services.AuthResponse, error) {
	if m.LoginFunc == nil {
		return nil, models.ErrUnauthorized
	}
	return m.LoginFunc(ctx, origin, username, password)
}

// MockCatalog implements CatalogInterface for testing
type MockCatalog struct {
	GetStatsFunc           func(ctx context.Context) (*models.CatalogStats, error)
	ListStickersFunc       func(ctx context.Context, limit, offset int) ([]*models.Sticker, error)
	UpdateTagsFunc         func(ctx context.Context, id string, tags []string) (*models.Sticker, error)
	DeleteStickerFunc      func(ctx context.Context, id string) error
	IncrementDownloadsFunc func(ctx context.Context, id string) error
	ListPacksFunc          func(ctx context.Context) ([]*models.StickerPack, error)
}

func (m *MockCatalog) GetStats(ctx context.Context) (*models.CatalogStats, error) {
	if m.GetStatsFunc == nil {
		return &models.CatalogStats{}, nil
	}
	return m.GetStatsFunc(ctx)
}

func (m *MockCatalog) ListStickers(ctx context.Context, limit, offset int) ([]*models.Sticker, error) {
	if m.ListStickersFunc == nil {
		return []*models.Sticker{}, nil
	}
	return m.ListStickersFunc(ctx, limit, offset)
}

func (m *MockCatalog) UpdateTags(ctx context.Context, id string, tags []string) (*models.Sticker, error) {
	if m.UpdateTagsFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.UpdateTagsFunc(ctx, id, tags)
}

func (m *MockCatalog) DeleteSticker(ctx context.Context, id string) error {
	if m.DeleteStickerFunc == nil {
		return models.ErrNotFound
	}
	return m.DeleteStickerFunc(ctx, id)
}

func (m *MockCatalog) IncrementDownloads(ctx context.Context, id string) error {
	if m.IncrementDownloadsFunc == nil {
		return models.ErrNotFound
	}
	return m.IncrementDownloadsFunc(ctx, id)
}

func (m *MockCatalog) ListPacks(ctx context.Context) ([]*models.StickerPack, error) {
	if m.ListPacksFunc == nil {
		return []*models.StickerPack{}, nil
	}
	return m.ListPacksFunc(ctx)
}
