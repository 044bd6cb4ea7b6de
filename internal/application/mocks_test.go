package application

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Florddev/match-room-sub001/internal/domain/booking"
	"github.com/Florddev/match-room-sub001/internal/domain/hotel"
	"github.com/Florddev/match-room-sub001/internal/domain/negotiation"
	"github.com/Florddev/match-room-sub001/internal/domain/payment"
	"github.com/Florddev/match-room-sub001/internal/domain/room"
	"github.com/Florddev/match-room-sub001/internal/domain/stay"
	"github.com/Florddev/match-room-sub001/internal/domain/transaction"
	redisinfra "github.com/Florddev/match-room-sub001/internal/infrastructure/redis"
)

// === Mock implementations ===

// MockTxManager implements transaction.Manager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Begin(ctx context.Context) (transaction.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(transaction.Tx), args.Error(1)
}

func (m *MockTxManager) BeginSerializable(ctx context.Context) (transaction.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(transaction.Tx), args.Error(1)
}

// MockTx implements transaction.Tx
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTx) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// MockBookingRepository implements booking.Repository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	args := m.Called(ctx, tx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*booking.Booking, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	args := m.Called(ctx, tx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) SetPaymentSession(ctx context.Context, id, sessionID string) error {
	args := m.Called(ctx, id, sessionID)
	return args.Error(0)
}

func (m *MockBookingRepository) FindOverlapping(ctx context.Context, roomID string, r stay.Range) ([]*booking.Booking, error) {
	args := m.Called(ctx, roomID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) CountOverlapping(ctx context.Context, tx transaction.Tx, roomID string, r stay.Range) (int, error) {
	args := m.Called(ctx, tx, roomID, r)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepository) CountByStatus(ctx context.Context) (map[booking.Status]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[booking.Status]int), args.Error(1)
}

// MockNegotiationRepository implements negotiation.Repository
type MockNegotiationRepository struct {
	mock.Mock
}

func (m *MockNegotiationRepository) Create(ctx context.Context, n *negotiation.Negotiation) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNegotiationRepository) GetByID(ctx context.Context, id string) (*negotiation.Negotiation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*negotiation.Negotiation), args.Error(1)
}

func (m *MockNegotiationRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*negotiation.Negotiation, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*negotiation.Negotiation), args.Error(1)
}

func (m *MockNegotiationRepository) GetByHotelID(ctx context.Context, hotelID string, limit, offset int) ([]*negotiation.Negotiation, error) {
	args := m.Called(ctx, hotelID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*negotiation.Negotiation), args.Error(1)
}

func (m *MockNegotiationRepository) Update(ctx context.Context, tx transaction.Tx, n *negotiation.Negotiation) error {
	args := m.Called(ctx, tx, n)
	return args.Error(0)
}

func (m *MockNegotiationRepository) FindAcceptedOverlapping(ctx context.Context, roomID string, r stay.Range) ([]*negotiation.Negotiation, error) {
	args := m.Called(ctx, roomID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*negotiation.Negotiation), args.Error(1)
}

func (m *MockNegotiationRepository) CountAcceptedOverlapping(ctx context.Context, tx transaction.Tx, roomID string, r stay.Range) (int, error) {
	args := m.Called(ctx, tx, roomID, r)
	return args.Int(0), args.Error(1)
}

func (m *MockNegotiationRepository) FindActiveByUserAndRoom(ctx context.Context, userID, roomID string) ([]*negotiation.Negotiation, error) {
	args := m.Called(ctx, userID, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*negotiation.Negotiation), args.Error(1)
}

// MockRoomRepository implements room.Repository
type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, rm *room.Room) error {
	args := m.Called(ctx, rm)
	return args.Error(0)
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id string) (*room.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*room.Room), args.Error(1)
}

func (m *MockRoomRepository) GetByHotelID(ctx context.Context, hotelID string) ([]*room.Room, error) {
	args := m.Called(ctx, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*room.Room), args.Error(1)
}

func (m *MockRoomRepository) List(ctx context.Context, limit, offset int) ([]*room.Room, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*room.Room), args.Error(1)
}

// MockHotelRepository implements hotel.Repository
type MockHotelRepository struct {
	mock.Mock
}

func (m *MockHotelRepository) GetByID(ctx context.Context, id string) (*hotel.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hotel.Hotel), args.Error(1)
}

func (m *MockHotelRepository) List(ctx context.Context, limit, offset int) ([]*hotel.Hotel, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hotel.Hotel), args.Error(1)
}

func (m *MockHotelRepository) IsManagedBy(ctx context.Context, hotelID, userID string) (bool, error) {
	args := m.Called(ctx, hotelID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockHotelRepository) GetManagedHotelIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockLockManager implements redisinfra.LockManagerInterface
type MockLockManager struct {
	mock.Mock
}

func (m *MockLockManager) AcquireLock(ctx context.Context, key string, ttl time.Duration) (redisinfra.Lock, error) {
	args := m.Called(ctx, key, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(redisinfra.Lock), args.Error(1)
}

func (m *MockLockManager) AcquireLockWithRetry(ctx context.Context, key string, ttl time.Duration, maxRetries int, retryDelay time.Duration) (redisinfra.Lock, error) {
	args := m.Called(ctx, key, ttl, maxRetries, retryDelay)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(redisinfra.Lock), args.Error(1)
}

// MockLock implements redisinfra.Lock
type MockLock struct {
	mock.Mock
}

func (m *MockLock) Release(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLock) Extend(ctx context.Context, ttl time.Duration) error {
	args := m.Called(ctx, ttl)
	return args.Error(0)
}

// MockRoomCache implements redisinfra.RoomCacheInterface
type MockRoomCache struct {
	mock.Mock
}

func (m *MockRoomCache) Get(ctx context.Context, roomID string) (*room.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*room.Room), args.Error(1)
}

func (m *MockRoomCache) Set(ctx context.Context, rm *room.Room, ttl time.Duration) error {
	args := m.Called(ctx, rm, ttl)
	return args.Error(0)
}

func (m *MockRoomCache) Invalidate(ctx context.Context, roomID string) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}

// MockPaymentProvider implements payment.Provider
type MockPaymentProvider struct {
	mock.Mock
}

func (m *MockPaymentProvider) CreateSession(ctx context.Context, input payment.CreateSessionInput) (*payment.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Session), args.Error(1)
}

func (m *MockPaymentProvider) GetSessionStatus(ctx context.Context, sessionID string) (payment.SessionStatus, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(payment.SessionStatus), args.Error(1)
}

// === Test helper ===

type testDeps struct {
	txManager       *MockTxManager
	tx              *MockTx
	bookingRepo     *MockBookingRepository
	negotiationRepo *MockNegotiationRepository
	roomRepo        *MockRoomRepository
	hotelRepo       *MockHotelRepository
	lockManager     *MockLockManager
	lock            *MockLock
	cache           *MockRoomCache
	provider        *MockPaymentProvider

	availability       *AvailabilityService
	bookingService     *BookingService
	negotiationService *NegotiationService
	roomService        *RoomService
}

func newTestDeps() *testDeps {
	deps := &testDeps{
		txManager:       new(MockTxManager),
		tx:              new(MockTx),
		bookingRepo:     new(MockBookingRepository),
		negotiationRepo: new(MockNegotiationRepository),
		roomRepo:        new(MockRoomRepository),
		hotelRepo:       new(MockHotelRepository),
		lockManager:     new(MockLockManager),
		lock:            new(MockLock),
		cache:           new(MockRoomCache),
		provider:        new(MockPaymentProvider),
	}
	deps.availability = NewAvailabilityService(deps.bookingRepo, deps.negotiationRepo, deps.roomRepo)
	deps.bookingService = NewBookingService(deps.bookingRepo, deps.roomRepo, deps.txManager, deps.lockManager, deps.availability, deps.provider)
	deps.negotiationService = NewNegotiationService(deps.negotiationRepo, deps.bookingRepo, deps.roomRepo, deps.txManager, deps.lockManager, deps.availability)
	deps.roomService = NewRoomService(deps.roomRepo, deps.hotelRepo, deps.cache, deps.availability)
	return deps
}

func mustRange(start, end string) stay.Range {
	r, err := stay.ParseRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}
