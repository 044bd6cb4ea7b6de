package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Florddev/match-room-sub001/internal/domain/booking"
	"github.com/Florddev/match-room-sub001/internal/domain/room"
	"github.com/Florddev/match-room-sub001/internal/domain/stay"
	"github.com/Florddev/match-room-sub001/internal/domain/transaction"
)

// PostgreSQLの制約違反エラーコード
const (
	exclusionViolation = "23P01"
	uniqueViolation    = "23505"
)

type bookingRow struct {
	ID               string     `db:"id"`
	RoomID           string     `db:"room_id"`
	UserID           string     `db:"user_id"`
	NegotiationID    *string    `db:"negotiation_id"`
	StartDate        time.Time  `db:"start_date"`
	EndDate          time.Time  `db:"end_date"`
	TotalPrice       int        `db:"total_price"`
	Status           string     `db:"status"`
	PaymentSessionID *string    `db:"payment_session_id"`
	PaidAt           *time.Time `db:"paid_at"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

func (r *bookingRow) toEntity() (*booking.Booking, error) {
	status, err := booking.ParseStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("予約状態の変換に失敗: %w", err)
	}
	return &booking.Booking{
		ID: r.ID, RoomID: r.RoomID, UserID: r.UserID, NegotiationID: r.NegotiationID,
		Stay:       stay.NewRange(r.StartDate, r.EndDate),
		TotalPrice: r.TotalPrice, Status: status,
		PaymentSessionID: r.PaymentSessionID, PaidAt: r.PaidAt,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}, nil
}

const bookingColumns = `id, room_id, user_id, negotiation_id, start_date, end_date, total_price, status, payment_session_id, paid_at, created_at, updated_at`

type BookingRepository struct{ db *sqlx.DB }

func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	sqlxTx := UnwrapTx(tx)
	query := `INSERT INTO bookings (room_id, user_id, negotiation_id, start_date, end_date, total_price, status, payment_session_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	if err := sqlxTx.QueryRowContext(ctx, query,
		b.RoomID, b.UserID, b.NegotiationID, b.Stay.Start, b.Stay.End, b.TotalPrice, string(b.Status), b.PaymentSessionID, b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID); err != nil {
		if pgErr, ok := err.(*pq.Error); ok {
			switch pgErr.Code {
			case exclusionViolation:
				return room.ErrRoomNotAvailable
			case uniqueViolation:
				return booking.ErrNegotiationAlreadyBooked
			}
		}
		return fmt.Errorf("予約作成に失敗: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	var row bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, fmt.Errorf("予約取得に失敗: %w", err)
	}
	return row.toEntity()
}

func (r *BookingRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*booking.Booking, error) {
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	return toBookings(rows)
}

func (r *BookingRepository) Update(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	sqlxTx := UnwrapTx(tx)
	query := `UPDATE bookings SET status = $1, payment_session_id = $2, paid_at = $3, updated_at = $4 WHERE id = $5`
	result, err := sqlxTx.ExecContext(ctx, query, string(b.Status), b.PaymentSessionID, b.PaidAt, b.UpdatedAt, b.ID)
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == exclusionViolation {
			return room.ErrRoomNotAvailable
		}
		return fmt.Errorf("予約更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return booking.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) SetPaymentSession(ctx context.Context, id, sessionID string) error {
	query := `UPDATE bookings SET payment_session_id = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, sessionID, id)
	if err != nil {
		return fmt.Errorf("決済セッション紐付けに失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return booking.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) FindOverlapping(ctx context.Context, roomID string, sr stay.Range) ([]*booking.Booking, error) {
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE room_id = $1 AND status <> 'CANCELLED' AND start_date <= $3 AND end_date >= $2`
	if err := r.db.SelectContext(ctx, &rows, query, roomID, sr.Start, sr.End); err != nil {
		return nil, fmt.Errorf("重複予約検索に失敗: %w", err)
	}
	return toBookings(rows)
}

func (r *BookingRepository) CountOverlapping(ctx context.Context, tx transaction.Tx, roomID string, sr stay.Range) (int, error) {
	sqlxTx := UnwrapTx(tx)
	var count int
	query := `SELECT COUNT(*) FROM bookings
		WHERE room_id = $1 AND status <> 'CANCELLED' AND start_date <= $3 AND end_date >= $2`
	if err := sqlxTx.GetContext(ctx, &count, query, roomID, sr.Start, sr.End); err != nil {
		return 0, fmt.Errorf("重複予約の再確認に失敗: %w", err)
	}
	return count, nil
}

func (r *BookingRepository) CountByStatus(ctx context.Context) (map[booking.Status]int, error) {
	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	query := `SELECT status, COUNT(*) AS count FROM bookings GROUP BY status`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("予約集計に失敗: %w", err)
	}
	counts := make(map[booking.Status]int, len(rows))
	for _, row := range rows {
		status, err := booking.ParseStatus(row.Status)
		if err != nil {
			return nil, err
		}
		counts[status] = row.Count
	}
	return counts, nil
}

func toBookings(rows []bookingRow) ([]*booking.Booking, error) {
	result := make([]*booking.Booking, len(rows))
	for i := range rows {
		b, err := rows[i].toEntity()
		if err != nil {
			return nil, err
		}
		result[i] = b
	}
	return result, nil
}

var _ booking.Repository = (*BookingRepository)(nil)
