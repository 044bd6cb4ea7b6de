package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Florddev/match-room-sub001/internal/domain/room"
)

type roomRow struct {
	ID            string         `db:"id"`
	HotelID       string         `db:"hotel_id"`
	Name          string         `db:"name"`
	Description   string         `db:"description"`
	PricePerNight int            `db:"price_per_night"`
	Rating        float64        `db:"rating"`
	Categories    pq.StringArray `db:"categories"`
	Tags          pq.StringArray `db:"tags"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (r *roomRow) toEntity(roomTypes []string) *room.Room {
	return &room.Room{
		ID: r.ID, HotelID: r.HotelID, Name: r.Name, Description: r.Description,
		PricePerNight: r.PricePerNight, Rating: r.Rating,
		Categories: r.Categories, Tags: r.Tags, RoomTypes: roomTypes,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

const roomColumns = `id, hotel_id, name, description, price_per_night, rating, categories, tags, created_at, updated_at`

type RoomRepository struct{ db *sqlx.DB }

func NewRoomRepository(db *sqlx.DB) *RoomRepository { return &RoomRepository{db: db} }

func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) error {
	query := `INSERT INTO rooms (hotel_id, name, description, price_per_night, rating, categories, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		rm.HotelID, rm.Name, rm.Description, rm.PricePerNight, rm.Rating,
		pq.Array(rm.Categories), pq.Array(rm.Tags), rm.CreatedAt, rm.UpdatedAt,
	).Scan(&rm.ID); err != nil {
		return fmt.Errorf("客室作成に失敗: %w", err)
	}
	for _, rt := range rm.RoomTypes {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO room_room_types (room_id, room_type) VALUES ($1, $2)`, rm.ID, rt); err != nil {
			return fmt.Errorf("客室タイプ関連付けに失敗: %w", err)
		}
	}
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id string) (*room.Room, error) {
	var row roomRow
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, room.ErrRoomNotFound
		}
		return nil, fmt.Errorf("客室取得に失敗: %w", err)
	}
	roomTypes, err := r.getRoomTypes(ctx, id)
	if err != nil {
		return nil, err
	}
	return row.toEntity(roomTypes), nil
}

func (r *RoomRepository) GetByHotelID(ctx context.Context, hotelID string) ([]*room.Room, error) {
	var rows []roomRow
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE hotel_id = $1 ORDER BY name`
	if err := r.db.SelectContext(ctx, &rows, query, hotelID); err != nil {
		return nil, fmt.Errorf("ホテル客室一覧取得に失敗: %w", err)
	}
	return r.toRooms(ctx, rows)
}

func (r *RoomRepository) List(ctx context.Context, limit, offset int) ([]*room.Room, error) {
	var rows []roomRow
	query := `SELECT ` + roomColumns + ` FROM rooms ORDER BY rating DESC, name LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("客室一覧取得に失敗: %w", err)
	}
	return r.toRooms(ctx, rows)
}

func (r *RoomRepository) getRoomTypes(ctx context.Context, roomID string) ([]string, error) {
	var types []string
	if err := r.db.SelectContext(ctx, &types,
		`SELECT room_type FROM room_room_types WHERE room_id = $1 ORDER BY room_type`, roomID); err != nil {
		return nil, fmt.Errorf("客室タイプ取得に失敗: %w", err)
	}
	return types, nil
}

func (r *RoomRepository) toRooms(ctx context.Context, rows []roomRow) ([]*room.Room, error) {
	rooms := make([]*room.Room, len(rows))
	for i := range rows {
		roomTypes, err := r.getRoomTypes(ctx, rows[i].ID)
		if err != nil {
			return nil, err
		}
		rooms[i] = rows[i].toEntity(roomTypes)
	}
	return rooms, nil
}

var _ room.Repository = (*RoomRepository)(nil)
