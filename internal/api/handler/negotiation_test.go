package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Florddev/match-room-sub001/internal/domain/booking"
	"github.com/Florddev/match-room-sub001/internal/domain/hotel"
	"github.com/Florddev/match-room-sub001/internal/domain/negotiation"
	"github.com/Florddev/match-room-sub001/internal/domain/room"
	"github.com/Florddev/match-room-sub001/internal/domain/stay"
)

func testNegotiation(status negotiation.Status, price int) *negotiation.Negotiation {
	now := time.Now()
	r, _ := stay.ParseRange("2026-11-10", "2026-11-14")
	return &negotiation.Negotiation{
		ID:        "neg-123",
		RoomID:    "room-123",
		UserID:    "user-123",
		Stay:      r,
		Price:     price,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestNegotiationHandler_Create(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常に交渉を開始できる", func(t *testing.T) {
		mockService := new(MockNegotiationService)
		mockService.On("CreateNegotiation", mock.Anything, guestIdent, mock.AnythingOfType("application.CreateNegotiationInput")).
			Return(testNegotiation(negotiation.StatusPending, 9000), nil)

		handler := NewNegotiationHandler(mockService)

		reqBody := `{"room_id": "room-123", "start_date": "2026-11-10", "end_date": "2026-11-14", "price": 9000}`
		req := httptest.NewRequest(http.MethodPost, "/negotiations", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := withIdentity(e.NewContext(req, rec), guestIdent)

		err := handler.Create(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp NegotiationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "neg-123", resp.ID)
		assert.Equal(t, 9000, resp.Price)
		assert.Equal(t, "pending", resp.Status)

		mockService.AssertExpectations(t)
	})

	t.Run("日付形式が不正な場合400", func(t *testing.T) {
		mockService := new(MockNegotiationService)
		handler := NewNegotiationHandler(mockService)

		reqBody := `{"room_id": "room-123", "start_date": "2026/11/10", "end_date": "2026-11-14", "price": 9000}`
		req := httptest.NewRequest(http.MethodPost, "/negotiations", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := withIdentity(e.NewContext(req, rec), guestIdent)

		err := handler.Create(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})

	t.Run("同一客室に有効な交渉が既にある場合409", func(t *testing.T) {
		mockService := new(MockNegotiationService)
		mockService.On("CreateNegotiation", mock.Anything, guestIdent, mock.AnythingOfType("application.CreateNegotiationInput")).
			Return(nil, negotiation.ErrActiveNegotiationExists)

		handler := NewNegotiationHandler(mockService)

		reqBody := `{"room_id": "room-123", "start_date": "2026-11-10", "end_date": "2026-11-14", "price": 9000}`
		req := httptest.NewRequest(http.MethodPost, "/negotiations", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := withIdentity(e.NewContext(req, rec), guestIdent)

		err := handler.Create(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, he.Code)

		mockService.AssertExpectations(t)
	})
}

func TestNegotiationHandler_Accept(t *testing.T) {
	e := NewTestEcho()

	acceptedBooking := &booking.Booking{
		ID:         "booking-123",
		RoomID:     "room-123",
		UserID:     "user-123",
		Stay:       testNegotiation(negotiation.StatusAccepted, 10500).Stay,
		TotalPrice: 10500,
		Status:     booking.StatusPending,
		CreatedAt:  time.Now(),
	}

	t.Run("管理者の承諾で予約が生成される", func(t *testing.T) {
		mockService := new(MockNegotiationService)
		mockService.On("Accept", mock.Anything, managerIdent, "neg-123").
			Return(testNegotiation(negotiation.StatusAccepted, 9000), acceptedBooking, nil)

		handler := NewNegotiationHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/negotiations/neg-123/accept", nil)
		rec := httptest.NewRecorder()
		c := withIdentity(e.NewContext(req, rec), managerIdent)
		c.SetParamNames("id")
		c.SetParamValues("neg-123")

		err := handler.Accept(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp AcceptResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "accepted", resp.Negotiation.Status)
		assert.Equal(t, "booking-123", resp.Booking.ID)
		assert.Equal(t, "PENDING", resp.Booking.Status)

		mockService.AssertExpectations(t)
	})

	t.Run("ゲストの承諾は逆提案の承諾として扱われる", func(t *testing.T) {
		mockService := new(MockNegotiationService)
		mockService.On("AcceptCounter", mock.Anything, guestIdent, "neg-123").
			Return(testNegotiation(negotiation.StatusAccepted, 10500), acceptedBooking, nil)

		handler := NewNegotiationHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/negotiations/neg-123/accept", nil)
		rec := httptest.NewRecorder()
		c := withIdentity(e.NewContext(req, rec), guestIdent)
		c.SetParamNames("id")
		c.SetParamValues("neg-123")

		err := handler.Accept(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp AcceptResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 10500, resp.Negotiation.Price)
		assert.Equal(t, 10500, resp.Booking.TotalPrice)

		mockService.AssertExpectations(t)
	})

	t.Run("期間が埋まっている場合409", func(t *testing.T) {
		mockService := new(MockNegotiationService)
		mockService.On("Accept", mock.Anything, managerIdent, "neg-123").
			Return(nil, nil, room.ErrRoomNotAvailable)

		handler := NewNegotiationHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/negotiations/neg-123/accept", nil)
		rec := httptest.NewRecorder()
		c := withIdentity(e.NewContext(req, rec), managerIdent)
		c.SetParamNames("id")
		c.SetParamValues("neg-123")

		err := handler.Accept(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, he.Code)

		mockService.AssertExpectations(t)
	})

	t.Run("管理権限がない場合403", func(t *testing.T) {
		mockService := new(MockNegotiationService)
		mockService.On("Accept", mock.Anything, mock.Anything, "neg-123").
			Return(nil, nil, hotel.ErrNotHotelManager)

		handler := NewNegotiationHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/negotiations/neg-123/accept", nil)
		rec := httptest.NewRecorder()
		otherManager := managerIdent
		otherManager.ManagedHotelIDs = []string{"hotel-999"}
		c := withIdentity(e.NewContext(req, rec), otherManager)
		c.SetParamNames("id")
		c.SetParamValues("neg-123")

		err := handler.Accept(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, he.Code)

		mockService.AssertExpectations(t)
	})

	t.Run("逆提案がない状態でゲストが承諾すると409", func(t *testing.T) {
		mockService := new(MockNegotiationService)
		mockService.On("AcceptCounter", mock.Anything, guestIdent, "neg-123").
			Return(nil, nil, negotiation.ErrNoCounterOffer)

		handler := NewNegotiationHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/negotiations/neg-123/accept", nil)
		rec := httptest.NewRecorder()
		c := withIdentity(e.NewContext(req, rec), guestIdent)
		c.SetParamNames("id")
		c.SetParamValues("neg-123")

		err := handler.Accept(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, he.Code)

		mockService.AssertExpectations(t)
	})
}

func TestNegotiationHandler_Counter(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常に逆提案できる", func(t *testing.T) {
		mockService := new(MockNegotiationService)
		mockService.On("Counter", mock.Anything, managerIdent, "neg-123", 10500).
			Return(testNegotiation(negotiation.StatusCountered, 10500), nil)

		handler := NewNegotiationHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/negotiations/neg-123/counter", strings.NewReader(`{"price": 10500}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := withIdentity(e.NewContext(req, rec), managerIdent)
		c.SetParamNames("id")
		c.SetParamValues("neg-123")

		err := handler.Counter(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp NegotiationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "countered", resp.Status)
		assert.Equal(t, 10500, resp.Price)

		mockService.AssertExpectations(t)
	})

	t.Run("価格が不正な場合400", func(t *testing.T) {
		mockService := new(MockNegotiationService)
		handler := NewNegotiationHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/negotiations/neg-123/counter", strings.NewReader(`{"price": 0}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := withIdentity(e.NewContext(req, rec), managerIdent)
		c.SetParamNames("id")
		c.SetParamValues("neg-123")

		err := handler.Counter(c)

		require.Error(t, err)
	})
}

func TestNegotiationHandler_GetByID(t *testing.T) {
	e := NewTestEcho()

	t.Run("当事者は交渉を参照できる", func(t *testing.T) {
		mockService := new(MockNegotiationService)
		mockService.On("GetNegotiation", mock.Anything, guestIdent, "neg-123").
			Return(testNegotiation(negotiation.StatusPending, 9000), nil)

		handler := NewNegotiationHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/negotiations/neg-123", nil)
		rec := httptest.NewRecorder()
		c := withIdentity(e.NewContext(req, rec), guestIdent)
		c.SetParamNames("id")
		c.SetParamValues("neg-123")

		err := handler.GetByID(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		mockService.AssertExpectations(t)
	})

	t.Run("第三者は参照できない", func(t *testing.T) {
		mockService := new(MockNegotiationService)
		mockService.On("GetNegotiation", mock.Anything, otherIdent, "neg-123").
			Return(nil, negotiation.ErrNotNegotiationOwner)

		handler := NewNegotiationHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/negotiations/neg-123", nil)
		rec := httptest.NewRecorder()
		c := withIdentity(e.NewContext(req, rec), otherIdent)
		c.SetParamNames("id")
		c.SetParamValues("neg-123")

		err := handler.GetByID(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, he.Code)
	})
}

func TestNegotiationHandler_ListByHotel(t *testing.T) {
	e := NewTestEcho()

	t.Run("管理者はホテル宛の交渉一覧を取得できる", func(t *testing.T) {
		mockService := new(MockNegotiationService)
		negotiations := []*negotiation.Negotiation{
			testNegotiation(negotiation.StatusPending, 9000),
			testNegotiation(negotiation.StatusCountered, 10500),
		}
		mockService.On("GetHotelNegotiations", mock.Anything, managerIdent, "hotel-123", 0, 0).
			Return(negotiations, nil)

		handler := NewNegotiationHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/hotels/hotel-123/negotiations", nil)
		rec := httptest.NewRecorder()
		c := withIdentity(e.NewContext(req, rec), managerIdent)
		c.SetParamNames("id")
		c.SetParamValues("hotel-123")

		err := handler.ListByHotel(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp []NegotiationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp, 2)

		mockService.AssertExpectations(t)
	})
}
