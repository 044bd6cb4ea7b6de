package identity

// Role は認証済みユーザーの役割を表す
type Role string

const (
	RoleGuest   Role = "guest"
	RoleManager Role = "manager"
)

// Identity は認証済みの呼び出し元を表す
// 認証自体は外部で完了しており、コアは権限判定のみを行う
type Identity struct {
	UserID          string
	Role            Role
	ManagedHotelIDs []string
}

// CanManageHotel は指定ホテルの管理権限を持つかを返す
// 役割名の文字列比較ではなく、管理関係の有無で判定する
func (i Identity) CanManageHotel(hotelID string) bool {
	for _, id := range i.ManagedHotelIDs {
		if id == hotelID {
			return true
		}
	}
	return false
}

// Owns は対象リソースの所有者かを返す
func (i Identity) Owns(ownerUserID string) bool {
	return i.UserID != "" && i.UserID == ownerUserID
}
