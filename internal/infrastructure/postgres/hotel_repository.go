package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Florddev/match-room-sub001/internal/domain/hotel"
)

type hotelRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Address     string    `db:"address"`
	City        string    `db:"city"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r *hotelRow) toEntity() *hotel.Hotel {
	return &hotel.Hotel{
		ID: r.ID, Name: r.Name, Description: r.Description,
		Address: r.Address, City: r.City,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

type HotelRepository struct{ db *sqlx.DB }

func NewHotelRepository(db *sqlx.DB) *HotelRepository { return &HotelRepository{db: db} }

func (r *HotelRepository) GetByID(ctx context.Context, id string) (*hotel.Hotel, error) {
	var row hotelRow
	query := `SELECT id, name, description, address, city, created_at, updated_at FROM hotels WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, hotel.ErrHotelNotFound
		}
		return nil, fmt.Errorf("ホテル取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *HotelRepository) List(ctx context.Context, limit, offset int) ([]*hotel.Hotel, error) {
	var rows []hotelRow
	query := `SELECT id, name, description, address, city, created_at, updated_at FROM hotels ORDER BY name LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("ホテル一覧取得に失敗: %w", err)
	}
	hotels := make([]*hotel.Hotel, len(rows))
	for i := range rows {
		hotels[i] = rows[i].toEntity()
	}
	return hotels, nil
}

func (r *HotelRepository) IsManagedBy(ctx context.Context, hotelID, userID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM hotel_managers WHERE hotel_id = $1 AND user_id = $2`
	if err := r.db.GetContext(ctx, &count, query, hotelID, userID); err != nil {
		return false, fmt.Errorf("管理関係の確認に失敗: %w", err)
	}
	return count > 0, nil
}

func (r *HotelRepository) GetManagedHotelIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	query := `SELECT hotel_id FROM hotel_managers WHERE user_id = $1`
	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("管理ホテル一覧取得に失敗: %w", err)
	}
	return ids, nil
}

var _ hotel.Repository = (*HotelRepository)(nil)
