package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Florddev/match-room-sub001/internal/api/middleware"
	"github.com/Florddev/match-room-sub001/internal/application"
	"github.com/Florddev/match-room-sub001/internal/domain/booking"
	"github.com/Florddev/match-room-sub001/internal/domain/identity"
	"github.com/Florddev/match-room-sub001/internal/domain/negotiation"
	"github.com/Florddev/match-room-sub001/internal/domain/stay"
)

type NegotiationHandler struct {
	service NegotiationServiceInterface
}

func NewNegotiationHandler(s NegotiationServiceInterface) *NegotiationHandler {
	return &NegotiationHandler{service: s}
}

type CreateNegotiationRequest struct {
	RoomID    string `json:"room_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	StartDate string `json:"start_date" validate:"required" example:"2026-11-10"`
	EndDate   string `json:"end_date" validate:"required" example:"2026-11-14"`
	Price     int    `json:"price" validate:"required,min=1" example:"9000"`
}

type CounterRequest struct {
	Price int `json:"price" validate:"required,min=1" example:"10500"`
}

type NegotiationResponse struct {
	ID         string  `json:"id"`
	RoomID     string  `json:"room_id"`
	UserID     string  `json:"user_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Price      int     `json:"price"`
	Status     string  `json:"status"`
	AcceptedAt *string `json:"accepted_at,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// AcceptResponse は交渉の承諾結果と、それによって生成された予約を返す
type AcceptResponse struct {
	Negotiation NegotiationResponse `json:"negotiation"`
	Booking     BookingResponse     `json:"booking"`
}

func toNegotiationResponse(n *negotiation.Negotiation) NegotiationResponse {
	resp := NegotiationResponse{
		ID:        n.ID,
		RoomID:    n.RoomID,
		UserID:    n.UserID,
		StartDate: n.Stay.Start.Format(stay.DateLayout),
		EndDate:   n.Stay.End.Format(stay.DateLayout),
		Price:     n.Price,
		Status:    string(n.Status),
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.AcceptedAt != nil {
		acceptedAt := n.AcceptedAt.Format(time.RFC3339)
		resp.AcceptedAt = &acceptedAt
	}
	return resp
}

// Create godoc
// @Summary 価格交渉を開始
// @Description ゲストが希望価格を提示して交渉を開始します
// @Tags negotiations
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param request body CreateNegotiationRequest true "交渉情報"
// @Success 201 {object} NegotiationResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /negotiations [post]
func (h *NegotiationHandler) Create(c echo.Context) error {
	var req CreateNegotiationRequest
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
	n, err := h.service.CreateNegotiation(c.Request().Context(), middleware.CurrentIdentity(c), application.CreateNegotiationInput{
		RoomID: req.RoomID,
		Stay:   r,
		Price:  req.Price,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, toNegotiationResponse(n))
}

// GetByID godoc
// @Summary 交渉を取得
// @Description 交渉の当事者（ゲスト本人または対象ホテルの管理者）のみ参照できます
// @Tags negotiations
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param id path string true "交渉ID"
// @Success 200 {object} NegotiationResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /negotiations/{id} [get]
func (h *NegotiationHandler) GetByID(c echo.Context) error {
	n, err := h.service.GetNegotiation(c.Request().Context(), middleware.CurrentIdentity(c), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toNegotiationResponse(n))
}

// List godoc
// @Summary 自分の交渉一覧を取得
// @Tags negotiations
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} NegotiationResponse
// @Router /negotiations [get]
func (h *NegotiationHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	negotiations, err := h.service.GetUserNegotiations(c.Request().Context(), middleware.CurrentIdentity(c), limit, offset)
	if err != nil {
		return domainError(err)
	}
	resp := make([]NegotiationResponse, len(negotiations))
	for i, n := range negotiations {
		resp[i] = toNegotiationResponse(n)
	}
	return c.JSON(http.StatusOK, resp)
}

// ListByHotel godoc
// @Summary ホテル宛の交渉一覧を取得
// @Description ホテルの管理者のみ参照できます
// @Tags hotels
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param X-User-Role header string true "ロール" Enums(manager)
// @Param id path string true "ホテルID"
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} NegotiationResponse
// @Failure 403 {object} map[string]string
// @Router /hotels/{id}/negotiations [get]
func (h *NegotiationHandler) ListByHotel(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	negotiations, err := h.service.GetHotelNegotiations(c.Request().Context(), middleware.CurrentIdentity(c), c.Param("id"), limit, offset)
	if err != nil {
		return domainError(err)
	}
	resp := make([]NegotiationResponse, len(negotiations))
	for i, n := range negotiations {
		resp[i] = toNegotiationResponse(n)
	}
	return c.JSON(http.StatusOK, resp)
}

// Accept godoc
// @Summary 交渉を承諾して予約を生成
// @Description 管理者は現在の提示価格を承諾し、ゲストは逆提案を承諾します。
// @Description 承諾と同時に提示価格での予約がPENDING状態で生成されます
// @Tags negotiations
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param id path string true "交渉ID"
// @Success 200 {object} AcceptResponse
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /negotiations/{id}/accept [post]
func (h *NegotiationHandler) Accept(c echo.Context) error {
	ident := middleware.CurrentIdentity(c)

	// 管理者はゲストの提示価格を、ゲストは管理者の逆提案を承諾する
	var (
		n   *negotiation.Negotiation
		b   *booking.Booking
		err error
	)
	if ident.Role == identity.RoleManager {
		n, b, err = h.service.Accept(c.Request().Context(), ident, c.Param("id"))
	} else {
		n, b, err = h.service.AcceptCounter(c.Request().Context(), ident, c.Param("id"))
	}
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, AcceptResponse{
		Negotiation: toNegotiationResponse(n),
		Booking:     toBookingResponse(b),
	})
}

// Reject godoc
// @Summary 交渉を拒否
// @Description ホテル管理者が交渉を終了させます
// @Tags negotiations
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param X-User-Role header string true "ロール" Enums(manager)
// @Param id path string true "交渉ID"
// @Success 200 {object} NegotiationResponse
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /negotiations/{id}/reject [post]
func (h *NegotiationHandler) Reject(c echo.Context) error {
	n, err := h.service.Reject(c.Request().Context(), middleware.CurrentIdentity(c), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toNegotiationResponse(n))
}

// Counter godoc
// @Summary 逆提案を提示
// @Description ホテル管理者が別の価格を提示します（提示価格が上書きされます）
// @Tags negotiations
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param X-User-Role header string true "ロール" Enums(manager)
// @Param id path string true "交渉ID"
// @Param request body CounterRequest true "逆提案価格"
// @Success 200 {object} NegotiationResponse
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /negotiations/{id}/counter [post]
func (h *NegotiationHandler) Counter(c echo.Context) error {
	var req CounterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	n, err := h.service.Counter(c.Request().Context(), middleware.CurrentIdentity(c), c.Param("id"), req.Price)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toNegotiationResponse(n))
}

// Cancel godoc
// @Summary 交渉を取り下げ
// @Description 交渉を開始したゲスト本人のみ取り下げできます
// @Tags negotiations
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param id path string true "交渉ID"
// @Success 200 {object} NegotiationResponse
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /negotiations/{id}/cancel [post]
func (h *NegotiationHandler) Cancel(c echo.Context) error {
	n, err := h.service.CancelNegotiation(c.Request().Context(), middleware.CurrentIdentity(c), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toNegotiationResponse(n))
}
