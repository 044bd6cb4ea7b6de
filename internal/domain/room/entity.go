package room

import "time"

// Room は客室エンティティを表す
type Room struct {
	ID            string
	HotelID       string
	Name          string
	Description   string
	PricePerNight int // 1泊あたりの料金
	Rating        float64
	Categories    []string
	Tags          []string
	RoomTypes     []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewRoom は新しい客室を作成する
func NewRoom(hotelID, name string, pricePerNight int) *Room {
	now := time.Now()
	return &Room{
		HotelID:       hotelID,
		Name:          name,
		PricePerNight: pricePerNight,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate は客室の検証を行う
func (r *Room) Validate() error {
	if r.HotelID == "" {
		return ErrHotelIDRequired
	}
	if r.Name == "" {
		return ErrRoomNameRequired
	}
	if r.PricePerNight < 0 {
		return ErrInvalidPrice
	}
	return nil
}
