package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Florddev/match-room-sub001/internal/domain/booking"
	"github.com/Florddev/match-room-sub001/internal/domain/hotel"
	"github.com/Florddev/match-room-sub001/internal/domain/negotiation"
	"github.com/Florddev/match-room-sub001/internal/domain/payment"
	"github.com/Florddev/match-room-sub001/internal/domain/room"
	"github.com/Florddev/match-room-sub001/internal/domain/stay"
)

// domainError はドメインエラーをHTTPステータスに変換する
func domainError(err error) error {
	switch {
	// 404
	case errors.Is(err, hotel.ErrHotelNotFound),
		errors.Is(err, room.ErrRoomNotFound),
		errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, negotiation.ErrNegotiationNotFound),
		errors.Is(err, payment.ErrSessionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	// 403
	case errors.Is(err, hotel.ErrNotHotelManager),
		errors.Is(err, booking.ErrNotBookingOwner),
		errors.Is(err, negotiation.ErrNotNegotiationOwner):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())

	// 409: 状態の競合
	case errors.Is(err, room.ErrRoomNotAvailable),
		errors.Is(err, negotiation.ErrActiveNegotiationExists),
		errors.Is(err, negotiation.ErrNegotiationNotActive),
		errors.Is(err, negotiation.ErrNoCounterOffer),
		errors.Is(err, booking.ErrNegotiationAlreadyBooked),
		errors.Is(err, booking.ErrBookingAlreadyPaid),
		errors.Is(err, booking.ErrBookingCancelled),
		errors.Is(err, booking.ErrBookingAlreadyCancelled),
		errors.Is(err, booking.ErrCancelPaidBooking),
		errors.Is(err, booking.ErrCancellationTooLate),
		errors.Is(err, booking.ErrSessionMismatch):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	// 402: 未払い
	case errors.Is(err, payment.ErrPaymentNotCompleted):
		return echo.NewHTTPError(http.StatusPaymentRequired, err.Error())

	// 502: 決済プロバイダ障害
	case errors.Is(err, payment.ErrProviderUnavailable):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())

	// 400: 入力不正
	case errors.Is(err, stay.ErrDatesRequired),
		errors.Is(err, stay.ErrEndBeforeStart),
		errors.Is(err, stay.ErrInvalidDateFormat),
		errors.Is(err, negotiation.ErrInvalidPrice),
		errors.Is(err, negotiation.ErrRoomIDRequired),
		errors.Is(err, room.ErrInvalidPrice),
		errors.Is(err, room.ErrRoomNameRequired),
		errors.Is(err, room.ErrHotelIDRequired),
		errors.Is(err, booking.ErrRoomIDRequired),
		errors.Is(err, booking.ErrInvalidTotalPrice):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
