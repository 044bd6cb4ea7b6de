package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Florddev/match-room-sub001/internal/domain/hotel"
	"github.com/Florddev/match-room-sub001/internal/domain/identity"
)

type mockHotelRepository struct {
	mock.Mock
}

func (m *mockHotelRepository) GetByID(ctx context.Context, id string) (*hotel.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hotel.Hotel), args.Error(1)
}

func (m *mockHotelRepository) List(ctx context.Context, limit, offset int) ([]*hotel.Hotel, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hotel.Hotel), args.Error(1)
}

func (m *mockHotelRepository) IsManagedBy(ctx context.Context, hotelID, userID string) (bool, error) {
	args := m.Called(ctx, hotelID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockHotelRepository) GetManagedHotelIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func TestIdentity(t *testing.T) {
	e := echo.New()

	t.Run("ゲストのIdentityがコンテキストに載る", func(t *testing.T) {
		repo := new(mockHotelRepository)

		var got identity.Identity
		handler := Identity(repo)(func(c echo.Context) error {
			got = CurrentIdentity(c)
			return c.NoContent(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		req.Header.Set("X-User-ID", "user-123")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler(c)

		require.NoError(t, err)
		assert.Equal(t, "user-123", got.UserID)
		assert.Equal(t, identity.RoleGuest, got.Role)
		assert.Empty(t, got.ManagedHotelIDs)
	})

	t.Run("管理者は管理ホテル一覧が解決される", func(t *testing.T) {
		repo := new(mockHotelRepository)
		repo.On("GetManagedHotelIDs", mock.Anything, "manager-123").
			Return([]string{"hotel-1", "hotel-2"}, nil)

		var got identity.Identity
		handler := Identity(repo)(func(c echo.Context) error {
			got = CurrentIdentity(c)
			return c.NoContent(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/hotels/hotel-1/negotiations", nil)
		req.Header.Set("X-User-ID", "manager-123")
		req.Header.Set("X-User-Role", "manager")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler(c)

		require.NoError(t, err)
		assert.Equal(t, identity.RoleManager, got.Role)
		assert.True(t, got.CanManageHotel("hotel-1"))
		assert.False(t, got.CanManageHotel("hotel-9"))

		repo.AssertExpectations(t)
	})

	t.Run("ユーザーIDがない場合401", func(t *testing.T) {
		repo := new(mockHotelRepository)

		handler := Identity(repo)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("管理ホテルの解決に失敗した場合500", func(t *testing.T) {
		repo := new(mockHotelRepository)
		repo.On("GetManagedHotelIDs", mock.Anything, "manager-123").
			Return(nil, errors.New("db error"))

		handler := Identity(repo)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/hotels", nil)
		req.Header.Set("X-User-ID", "manager-123")
		req.Header.Set("X-User-Role", "manager")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusInternalServerError, he.Code)
	})
}

func TestCurrentIdentity_Empty(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ident := CurrentIdentity(c)
	assert.Empty(t, ident.UserID)
	assert.False(t, ident.Owns("anyone"))
}
