package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Florddev/match-room-sub001/internal/api/middleware"
	"github.com/Florddev/match-room-sub001/internal/application"
	"github.com/Florddev/match-room-sub001/internal/domain/booking"
	"github.com/Florddev/match-room-sub001/internal/domain/stay"
)

type BookingHandler struct {
	service BookingServiceInterface
}

func NewBookingHandler(s BookingServiceInterface) *BookingHandler {
	return &BookingHandler{service: s}
}

type CreateBookingRequest struct {
	RoomID    string `json:"room_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	StartDate string `json:"start_date" validate:"required" example:"2026-11-10"`
	EndDate   string `json:"end_date" validate:"required" example:"2026-11-14"`
}

type ConfirmPaymentRequest struct {
	SessionID string `json:"session_id" validate:"required" example:"cs_test_a1b2c3"`
}

type BookingResponse struct {
	ID               string  `json:"id"`
	RoomID           string  `json:"room_id"`
	UserID           string  `json:"user_id"`
	NegotiationID    *string `json:"negotiation_id,omitempty"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	TotalPrice       int     `json:"total_price"`
	Status           string  `json:"status"`
	PaymentSessionID *string `json:"payment_session_id,omitempty"`
	PaidAt           *string `json:"paid_at,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

type CheckoutResponse struct {
	SessionID   string `json:"session_id"`
	RedirectURL string `json:"redirect_url"`
}

func toBookingResponse(b *booking.Booking) BookingResponse {
	resp := BookingResponse{
		ID:               b.ID,
		RoomID:           b.RoomID,
		UserID:           b.UserID,
		NegotiationID:    b.NegotiationID,
		StartDate:        b.Stay.Start.Format(stay.DateLayout),
		EndDate:          b.Stay.End.Format(stay.DateLayout),
		TotalPrice:       b.TotalPrice,
		Status:           string(b.Status),
		PaymentSessionID: b.PaymentSessionID,
		CreatedAt:        b.CreatedAt.Format(time.RFC3339),
	}
	if b.PaidAt != nil {
		paidAt := b.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paidAt
	}
	return resp
}

// Create godoc
// @Summary 直接予約を作成
// @Description 定価で客室を予約します（PENDING状態で作成されます）
// @Tags bookings
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param request body CreateBookingRequest true "予約情報"
// @Success 201 {object} BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	r, err := stay.ParseRange(req.StartDate, req.EndDate)
	if err != nil {
		return domainError(err)
	}
	b, err := h.service.CreateBooking(c.Request().Context(), middleware.CurrentIdentity(c), application.CreateBookingInput{
		RoomID: req.RoomID,
		Stay:   r,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, toBookingResponse(b))
}

// GetByID godoc
// @Summary 予約を取得
// @Description 予約者本人または対象ホテルの管理者のみ参照できます
// @Tags bookings
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param id path string true "予約ID"
// @Success 200 {object} BookingResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetByID(c echo.Context) error {
	b, err := h.service.GetBooking(c.Request().Context(), middleware.CurrentIdentity(c), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// List godoc
// @Summary 自分の予約一覧を取得
// @Tags bookings
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} BookingResponse
// @Router /bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	bookings, err := h.service.GetUserBookings(c.Request().Context(), middleware.CurrentIdentity(c), limit, offset)
	if err != nil {
		return domainError(err)
	}
	resp := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = toBookingResponse(b)
	}
	return c.JSON(http.StatusOK, resp)
}

// Checkout godoc
// @Summary 決済セッションを開始
// @Description 外部決済プロバイダのセッションを作成し、リダイレクトURLを返します
// @Tags bookings
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param id path string true "予約ID"
// @Success 200 {object} CheckoutResponse
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /bookings/{id}/checkout [post]
func (h *BookingHandler) Checkout(c echo.Context) error {
	sess, err := h.service.Checkout(c.Request().Context(), middleware.CurrentIdentity(c), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, CheckoutResponse{
		SessionID:   sess.ID,
		RedirectURL: sess.RedirectURL,
	})
}

// Confirm godoc
// @Summary 決済完了を確認
// @Description 決済プロバイダに支払い状態を照会し、支払い済みであれば予約をPAIDに遷移させます
// @Tags bookings
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param id path string true "予約ID"
// @Param request body ConfirmPaymentRequest true "決済セッションID"
// @Success 200 {object} BookingResponse
// @Failure 402 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) Confirm(c echo.Context) error {
	var req ConfirmPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	b, err := h.service.ConfirmPayment(c.Request().Context(), middleware.CurrentIdentity(c), c.Param("id"), req.SessionID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// Cancel godoc
// @Summary 予約をキャンセル
// @Description 予約レコードは削除されず、CANCELLED状態に遷移します
// @Tags bookings
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param id path string true "予約ID"
// @Success 200 {object} BookingResponse
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c echo.Context) error {
	b, err := h.service.CancelBooking(c.Request().Context(), middleware.CurrentIdentity(c), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}
