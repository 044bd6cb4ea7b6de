package handler

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"github.com/Florddev/match-room-sub001/internal/api/middleware"
	"github.com/Florddev/match-room-sub001/internal/application"
	"github.com/Florddev/match-room-sub001/internal/domain/booking"
	"github.com/Florddev/match-room-sub001/internal/domain/hotel"
	"github.com/Florddev/match-room-sub001/internal/domain/identity"
	"github.com/Florddev/match-room-sub001/internal/domain/negotiation"
	"github.com/Florddev/match-room-sub001/internal/domain/payment"
	"github.com/Florddev/match-room-sub001/internal/domain/room"
	"github.com/Florddev/match-room-sub001/internal/domain/stay"
)

var (
	guestIdent = identity.Identity{UserID: "user-123", Role: identity.RoleGuest}
	otherIdent = identity.Identity{UserID: "user-456", Role: identity.RoleGuest}

	managerIdent = identity.Identity{
		UserID:          "manager-123",
		Role:            identity.RoleManager,
		ManagedHotelIDs: []string{"hotel-123"},
	}
)

// withIdentity はテスト用にIdentityをコンテキストに載せる
func withIdentity(c echo.Context, ident identity.Identity) echo.Context {
	middleware.SetIdentity(c, ident)
	return c
}

// MockRoomService はRoomServiceInterfaceのモック
type MockRoomService struct {
	mock.Mock
}

func (m *MockRoomService) CreateRoom(ctx context.Context, ident identity.Identity, input application.CreateRoomInput) (*room.Room, error) {
	args := m.Called(ctx, ident, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*room.Room), args.Error(1)
}

func (m *MockRoomService) GetRoom(ctx context.Context, id string) (*room.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*room.Room), args.Error(1)
}

func (m *MockRoomService) ListRooms(ctx context.Context, limit, offset int) ([]*room.Room, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*room.Room), args.Error(1)
}

func (m *MockRoomService) GetHotel(ctx context.Context, id string) (*hotel.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hotel.Hotel), args.Error(1)
}

func (m *MockRoomService) ListHotels(ctx context.Context, limit, offset int) ([]*hotel.Hotel, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hotel.Hotel), args.Error(1)
}

func (m *MockRoomService) GetHotelRooms(ctx context.Context, hotelID string) ([]*room.Room, error) {
	args := m.Called(ctx, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*room.Room), args.Error(1)
}

func (m *MockRoomService) CheckAvailability(ctx context.Context, roomID string, r stay.Range) (bool, error) {
	args := m.Called(ctx, roomID, r)
	return args.Bool(0), args.Error(1)
}

// MockBookingService はBookingServiceInterfaceのモック
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, ident identity.Identity, input application.CreateBookingInput) (*booking.Booking, error) {
	args := m.Called(ctx, ident, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingService) GetBooking(ctx context.Context, ident identity.Identity, id string) (*booking.Booking, error) {
	args := m.Called(ctx, ident, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingService) GetUserBookings(ctx context.Context, ident identity.Identity, limit, offset int) ([]*booking.Booking, error) {
	args := m.Called(ctx, ident, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func (m *MockBookingService) Checkout(ctx context.Context, ident identity.Identity, bookingID string) (*payment.Session, error) {
	args := m.Called(ctx, ident, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Session), args.Error(1)
}

func (m *MockBookingService) ConfirmPayment(ctx context.Context, ident identity.Identity, bookingID, sessionID string) (*booking.Booking, error) {
	args := m.Called(ctx, ident, bookingID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingService) CancelBooking(ctx context.Context, ident identity.Identity, id string) (*booking.Booking, error) {
	args := m.Called(ctx, ident, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

// MockNegotiationService はNegotiationServiceInterfaceのモック
type MockNegotiationService struct {
	mock.Mock
}

func (m *MockNegotiationService) CreateNegotiation(ctx context.Context, ident identity.Identity, input application.CreateNegotiationInput) (*negotiation.Negotiation, error) {
	args := m.Called(ctx, ident, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*negotiation.Negotiation), args.Error(1)
}

func (m *MockNegotiationService) GetNegotiation(ctx context.Context, ident identity.Identity, id string) (*negotiation.Negotiation, error) {
	args := m.Called(ctx, ident, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*negotiation.Negotiation), args.Error(1)
}

func (m *MockNegotiationService) GetUserNegotiations(ctx context.Context, ident identity.Identity, limit, offset int) ([]*negotiation.Negotiation, error) {
	args := m.Called(ctx, ident, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*negotiation.Negotiation), args.Error(1)
}

func (m *MockNegotiationService) GetHotelNegotiations(ctx context.Context, ident identity.Identity, hotelID string, limit, offset int) ([]*negotiation.Negotiation, error) {
	args := m.Called(ctx, ident, hotelID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*negotiation.Negotiation), args.Error(1)
}

func (m *MockNegotiationService) Accept(ctx context.Context, ident identity.Identity, id string) (*negotiation.Negotiation, *booking.Booking, error) {
	args := m.Called(ctx, ident, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*negotiation.Negotiation), args.Get(1).(*booking.Booking), args.Error(2)
}

func (m *MockNegotiationService) AcceptCounter(ctx context.Context, ident identity.Identity, id string) (*negotiation.Negotiation, *booking.Booking, error) {
	args := m.Called(ctx, ident, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*negotiation.Negotiation), args.Get(1).(*booking.Booking), args.Error(2)
}

func (m *MockNegotiationService) Reject(ctx context.Context, ident identity.Identity, id string) (*negotiation.Negotiation, error) {
	args := m.Called(ctx, ident, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*negotiation.Negotiation), args.Error(1)
}

func (m *MockNegotiationService) Counter(ctx context.Context, ident identity.Identity, id string, price int) (*negotiation.Negotiation, error) {
	args := m.Called(ctx, ident, id, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*negotiation.Negotiation), args.Error(1)
}

func (m *MockNegotiationService) CancelNegotiation(ctx context.Context, ident identity.Identity, id string) (*negotiation.Negotiation, error) {
	args := m.Called(ctx, ident, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*negotiation.Negotiation), args.Error(1)
}
