package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Florddev/match-room-sub001/internal/domain/negotiation"
	"github.com/Florddev/match-room-sub001/internal/domain/room"
	"github.com/Florddev/match-room-sub001/internal/domain/stay"
	"github.com/Florddev/match-room-sub001/internal/domain/transaction"
)

type negotiationRow struct {
	ID         string     `db:"id"`
	RoomID     string     `db:"room_id"`
	UserID     string     `db:"user_id"`
	StartDate  time.Time  `db:"start_date"`
	EndDate    time.Time  `db:"end_date"`
	Price      int        `db:"price"`
	Status     string     `db:"status"`
	AcceptedAt *time.Time `db:"accepted_at"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

func (r *negotiationRow) toEntity() (*negotiation.Negotiation, error) {
	status, err := negotiation.ParseStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("交渉状態の変換に失敗: %w", err)
	}
	return &negotiation.Negotiation{
		ID: r.ID, RoomID: r.RoomID, UserID: r.UserID,
		Stay:  stay.NewRange(r.StartDate, r.EndDate),
		Price: r.Price, Status: status, AcceptedAt: r.AcceptedAt,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}, nil
}

const negotiationColumns = `id, room_id, user_id, start_date, end_date, price, status, accepted_at, created_at, updated_at`

type NegotiationRepository struct{ db *sqlx.DB }

func NewNegotiationRepository(db *sqlx.DB) *NegotiationRepository {
	return &NegotiationRepository{db: db}
}

func (r *NegotiationRepository) Create(ctx context.Context, n *negotiation.Negotiation) error {
	query := `INSERT INTO negotiations (room_id, user_id, start_date, end_date, price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		n.RoomID, n.UserID, n.Stay.Start, n.Stay.End, n.Price, string(n.Status), n.CreatedAt, n.UpdatedAt,
	).Scan(&n.ID); err != nil {
		return fmt.Errorf("交渉作成に失敗: %w", err)
	}
	return nil
}

func (r *NegotiationRepository) GetByID(ctx context.Context, id string) (*negotiation.Negotiation, error) {
	var row negotiationRow
	query := `SELECT ` + negotiationColumns + ` FROM negotiations WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, negotiation.ErrNegotiationNotFound
		}
		return nil, fmt.Errorf("交渉取得に失敗: %w", err)
	}
	return row.toEntity()
}

func (r *NegotiationRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*negotiation.Negotiation, error) {
	var rows []negotiationRow
	query := `SELECT ` + negotiationColumns + ` FROM negotiations WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("交渉一覧取得に失敗: %w", err)
	}
	return toNegotiations(rows)
}

func (r *NegotiationRepository) GetByHotelID(ctx context.Context, hotelID string, limit, offset int) ([]*negotiation.Negotiation, error) {
	var rows []negotiationRow
	query := `SELECT n.id, n.room_id, n.user_id, n.start_date, n.end_date, n.price, n.status, n.accepted_at, n.created_at, n.updated_at
		FROM negotiations n
		JOIN rooms r ON r.id = n.room_id
		WHERE r.hotel_id = $1
		ORDER BY n.created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, hotelID, limit, offset); err != nil {
		return nil, fmt.Errorf("ホテル別交渉一覧取得に失敗: %w", err)
	}
	return toNegotiations(rows)
}

func (r *NegotiationRepository) Update(ctx context.Context, tx transaction.Tx, n *negotiation.Negotiation) error {
	sqlxTx := UnwrapTx(tx)
	query := `UPDATE negotiations SET price = $1, status = $2, accepted_at = $3, updated_at = $4 WHERE id = $5`
	result, err := sqlxTx.ExecContext(ctx, query, n.Price, string(n.Status), n.AcceptedAt, n.UpdatedAt, n.ID)
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == exclusionViolation {
			return room.ErrRoomNotAvailable
		}
		return fmt.Errorf("交渉更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return negotiation.ErrNegotiationNotFound
	}
	return nil
}

func (r *NegotiationRepository) FindAcceptedOverlapping(ctx context.Context, roomID string, sr stay.Range) ([]*negotiation.Negotiation, error) {
	var rows []negotiationRow
	query := `SELECT ` + negotiationColumns + ` FROM negotiations
		WHERE room_id = $1 AND status = 'accepted' AND start_date <= $3 AND end_date >= $2`
	if err := r.db.SelectContext(ctx, &rows, query, roomID, sr.Start, sr.End); err != nil {
		return nil, fmt.Errorf("承諾済み交渉検索に失敗: %w", err)
	}
	return toNegotiations(rows)
}

func (r *NegotiationRepository) CountAcceptedOverlapping(ctx context.Context, tx transaction.Tx, roomID string, sr stay.Range) (int, error) {
	sqlxTx := UnwrapTx(tx)
	var count int
	query := `SELECT COUNT(*) FROM negotiations
		WHERE room_id = $1 AND status = 'accepted' AND start_date <= $3 AND end_date >= $2`
	if err := sqlxTx.GetContext(ctx, &count, query, roomID, sr.Start, sr.End); err != nil {
		return 0, fmt.Errorf("承諾済み交渉の再確認に失敗: %w", err)
	}
	return count, nil
}

func (r *NegotiationRepository) FindActiveByUserAndRoom(ctx context.Context, userID, roomID string) ([]*negotiation.Negotiation, error) {
	var rows []negotiationRow
	query := `SELECT ` + negotiationColumns + ` FROM negotiations
		WHERE user_id = $1 AND room_id = $2 AND status IN ('pending', 'countered')`
	if err := r.db.SelectContext(ctx, &rows, query, userID, roomID); err != nil {
		return nil, fmt.Errorf("進行中交渉検索に失敗: %w", err)
	}
	return toNegotiations(rows)
}

func toNegotiations(rows []negotiationRow) ([]*negotiation.Negotiation, error) {
	result := make([]*negotiation.Negotiation, len(rows))
	for i := range rows {
		n, err := rows[i].toEntity()
		if err != nil {
			return nil, err
		}
		result[i] = n
	}
	return result, nil
}

var _ negotiation.Repository = (*NegotiationRepository)(nil)
