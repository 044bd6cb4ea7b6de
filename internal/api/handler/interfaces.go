package handler

import (
	"context"

	"github.com/Florddev/match-room-sub001/internal/application"
	"github.com/Florddev/match-room-sub001/internal/domain/booking"
	"github.com/Florddev/match-room-sub001/internal/domain/hotel"
	"github.com/Florddev/match-room-sub001/internal/domain/identity"
	"github.com/Florddev/match-room-sub001/internal/domain/negotiation"
	"github.com/Florddev/match-room-sub001/internal/domain/payment"
	"github.com/Florddev/match-room-sub001/internal/domain/room"
	"github.com/Florddev/match-room-sub001/internal/domain/stay"
)

// RoomServiceInterface はホテル・客室サービスのインターフェース
type RoomServiceInterface interface {
	CreateRoom(ctx context.Context, ident identity.Identity, input application.CreateRoomInput) (*room.Room, error)
	GetRoom(ctx context.Context, id string) (*room.Room, error)
	ListRooms(ctx context.Context, limit, offset int) ([]*room.Room, error)
	GetHotel(ctx context.Context, id string) (*hotel.Hotel, error)
	ListHotels(ctx context.Context, limit, offset int) ([]*hotel.Hotel, error)
	GetHotelRooms(ctx context.Context, hotelID string) ([]*room.Room, error)
	CheckAvailability(ctx context.Context, roomID string, r stay.Range) (bool, error)
}

// BookingServiceInterface は予約サービスのインターフェース
type BookingServiceInterface interface {
	CreateBooking(ctx context.Context, ident identity.Identity, input application.CreateBookingInput) (*booking.Booking, error)
	GetBooking(ctx context.Context, ident identity.Identity, id string) (*booking.Booking, error)
	GetUserBookings(ctx context.Context, ident identity.Identity, limit, offset int) ([]*booking.Booking, error)
	Checkout(ctx context.Context, ident identity.Identity, bookingID string) (*payment.Session, error)
	ConfirmPayment(ctx context.Context, ident identity.Identity, bookingID, sessionID string) (*booking.Booking, error)
	CancelBooking(ctx context.Context, ident identity.Identity, id string) (*booking.Booking, error)
}

// NegotiationServiceInterface は価格交渉サービスのインターフェース
type NegotiationServiceInterface interface {
	CreateNegotiation(ctx context.Context, ident identity.Identity, input application.CreateNegotiationInput) (*negotiation.Negotiation, error)
	GetNegotiation(ctx context.Context, ident identity.Identity, id string) (*negotiation.Negotiation, error)
	GetUserNegotiations(ctx context.Context, ident identity.Identity, limit, offset int) ([]*negotiation.Negotiation, error)
	GetHotelNegotiations(ctx context.Context, ident identity.Identity, hotelID string, limit, offset int) ([]*negotiation.Negotiation, error)
	Accept(ctx context.Context, ident identity.Identity, id string) (*negotiation.Negotiation, *booking.Booking, error)
	AcceptCounter(ctx context.Context, ident identity.Identity, id string) (*negotiation.Negotiation, *booking.Booking, error)
	Reject(ctx context.Context, ident identity.Identity, id string) (*negotiation.Negotiation, error)
	Counter(ctx context.Context, ident identity.Identity, id string, price int) (*negotiation.Negotiation, error)
	CancelNegotiation(ctx context.Context, ident identity.Identity, id string) (*negotiation.Negotiation, error)
}
