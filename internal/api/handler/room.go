package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Florddev/match-room-sub001/internal/api/middleware"
	"github.com/Florddev/match-room-sub001/internal/application"
	"github.com/Florddev/match-room-sub001/internal/domain/hotel"
	"github.com/Florddev/match-room-sub001/internal/domain/room"
	"github.com/Florddev/match-room-sub001/internal/domain/stay"
)

type RoomHandler struct {
	service RoomServiceInterface
}

func NewRoomHandler(s RoomServiceInterface) *RoomHandler {
	return &RoomHandler{service: s}
}

type CreateRoomRequest struct {
	HotelID       string   `json:"hotel_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name          string   `json:"name" validate:"required" example:"デラックスツイン"`
	Description   string   `json:"description" example:"40平米・シティビュー"`
	PricePerNight int      `json:"price_per_night" validate:"required,min=1" example:"12000"`
	Categories    []string `json:"categories" example:"deluxe"`
	Tags          []string `json:"tags" example:"禁煙"`
	RoomTypes     []string `json:"room_types" example:"twin"`
}

type RoomResponse struct {
	ID            string   `json:"id"`
	HotelID       string   `json:"hotel_id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	PricePerNight int      `json:"price_per_night"`
	Rating        float64  `json:"rating"`
	Categories    []string `json:"categories"`
	Tags          []string `json:"tags"`
	RoomTypes     []string `json:"room_types"`
}

type HotelResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	City        string `json:"city"`
}

type AvailabilityResponse struct {
	RoomID    string `json:"room_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Available bool   `json:"available"`
}

func toRoomResponse(rm *room.Room) RoomResponse {
	return RoomResponse{
		ID: rm.ID, HotelID: rm.HotelID, Name: rm.Name, Description: rm.Description,
		PricePerNight: rm.PricePerNight, Rating: rm.Rating,
		Categories: rm.Categories, Tags: rm.Tags, RoomTypes: rm.RoomTypes,
	}
}

func toHotelResponse(h *hotel.Hotel) HotelResponse {
	return HotelResponse{
		ID: h.ID, Name: h.Name, Description: h.Description,
		Address: h.Address, City: h.City,
	}
}

// parseStayRange はクエリパラメータから宿泊期間を取り出す
func parseStayRange(c echo.Context) (stay.Range, error) {
	start := c.QueryParam("start_date")
	end := c.QueryParam("end_date")
	if start == "" || end == "" {
		return stay.Range{}, echo.NewHTTPError(http.StatusBadRequest, "start_date と end_date は必須です")
	}
	r, err := stay.ParseRange(start, end)
	if err != nil {
		return stay.Range{}, domainError(err)
	}
	if err := r.Validate(); err != nil {
		return stay.Range{}, domainError(err)
	}
	return r, nil
}

// Create godoc
// @Summary 客室を登録
// @Description ホテル管理者が新しい客室を登録します
// @Tags rooms
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param X-User-Role header string true "ロール" Enums(manager)
// @Param request body CreateRoomRequest true "客室情報"
// @Success 201 {object} RoomResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /rooms [post]
func (h *RoomHandler) Create(c echo.Context) error {
	var req CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	rm, err := h.service.CreateRoom(c.Request().Context(), middleware.CurrentIdentity(c), application.CreateRoomInput{
		HotelID:       req.HotelID,
		Name:          req.Name,
		Description:   req.Description,
		PricePerNight: req.PricePerNight,
		Categories:    req.Categories,
		Tags:          req.Tags,
		RoomTypes:     req.RoomTypes,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, toRoomResponse(rm))
}

// GetByID godoc
// @Summary 客室を取得
// @Tags rooms
// @Produce json
// @Param id path string true "客室ID"
// @Success 200 {object} RoomResponse
// @Failure 404 {object} map[string]string
// @Router /rooms/{id} [get]
func (h *RoomHandler) GetByID(c echo.Context) error {
	rm, err := h.service.GetRoom(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toRoomResponse(rm))
}

// List godoc
// @Summary 客室一覧を取得
// @Tags rooms
// @Produce json
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} RoomResponse
// @Router /rooms [get]
func (h *RoomHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	rooms, err := h.service.ListRooms(c.Request().Context(), limit, offset)
	if err != nil {
		return domainError(err)
	}
	resp := make([]RoomResponse, len(rooms))
	for i, rm := range rooms {
		resp[i] = toRoomResponse(rm)
	}
	return c.JSON(http.StatusOK, resp)
}

// CheckAvailability godoc
// @Summary 空室状況を確認
// @Description 指定期間に客室が空いているかを返します（結果はキャッシュされません）
// @Tags rooms
// @Produce json
// @Param id path string true "客室ID"
// @Param start_date query string true "チェックイン日" example(2026-11-10)
// @Param end_date query string true "チェックアウト日" example(2026-11-14)
// @Success 200 {object} AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms/{id}/availability [get]
func (h *RoomHandler) CheckAvailability(c echo.Context) error {
	r, err := parseStayRange(c)
	if err != nil {
		return err
	}
	roomID := c.Param("id")
	available, err := h.service.CheckAvailability(c.Request().Context(), roomID, r)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, AvailabilityResponse{
		RoomID:    roomID,
		StartDate: r.Start.Format(stay.DateLayout),
		EndDate:   r.End.Format(stay.DateLayout),
		Available: available,
	})
}

// ListHotels godoc
// @Summary ホテル一覧を取得
// @Tags hotels
// @Produce json
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} HotelResponse
// @Router /hotels [get]
func (h *RoomHandler) ListHotels(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	hotels, err := h.service.ListHotels(c.Request().Context(), limit, offset)
	if err != nil {
		return domainError(err)
	}
	resp := make([]HotelResponse, len(hotels))
	for i, ht := range hotels {
		resp[i] = toHotelResponse(ht)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetHotel godoc
// @Summary ホテルを取得
// @Tags hotels
// @Produce json
// @Param id path string true "ホテルID"
// @Success 200 {object} HotelResponse
// @Failure 404 {object} map[string]string
// @Router /hotels/{id} [get]
func (h *RoomHandler) GetHotel(c echo.Context) error {
	ht, err := h.service.GetHotel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toHotelResponse(ht))
}

// GetHotelRooms godoc
// @Summary ホテル配下の客室一覧を取得
// @Tags hotels
// @Produce json
// @Param id path string true "ホテルID"
// @Success 200 {array} RoomResponse
// @Failure 404 {object} map[string]string
// @Router /hotels/{id}/rooms [get]
func (h *RoomHandler) GetHotelRooms(c echo.Context) error {
	rooms, err := h.service.GetHotelRooms(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	resp := make([]RoomResponse, len(rooms))
	for i, rm := range rooms {
		resp[i] = toRoomResponse(rm)
	}
	return c.JSON(http.StatusOK, resp)
}
