package hotel

import "time"

// Hotel はホテルエンティティを表す
type Hotel struct {
	ID          string
	Name        string
	Description string
	Address     string
	City        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewHotel は新しいホテルを作成する
func NewHotel(name, description, address, city string) *Hotel {
	now := time.Now()
	return &Hotel{
		Name:        name,
		Description: description,
		Address:     address,
		City:        city,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate はホテルの検証を行う
func (h *Hotel) Validate() error {
	if h.Name == "" {
		return ErrHotelNameRequired
	}
	return nil
}
