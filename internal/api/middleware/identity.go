package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Florddev/match-room-sub001/internal/domain/hotel"
	"github.com/Florddev/match-room-sub001/internal/domain/identity"
	"github.com/Florddev/match-room-sub001/internal/pkg/logger"
)

const identityContextKey = "identity"

// Identity は認証済みユーザーのIdentityをコンテキストに載せるミドルウェア
// 認証自体は上流のゲートウェイで完了しており、ここではヘッダーを信頼して
// 権限判定に必要な管理ホテル一覧を解決するだけ
func Identity(hotelRepo hotel.Repository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := c.Request().Header.Get("X-User-ID")
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
			}

			ident := identity.Identity{UserID: userID, Role: identity.RoleGuest}

			if c.Request().Header.Get("X-User-Role") == string(identity.RoleManager) {
				hotelIDs, err := hotelRepo.GetManagedHotelIDs(c.Request().Context(), userID)
				if err != nil {
					logger.Error("管理ホテルの解決に失敗", zap.String("user_id", userID), zap.Error(err))
					return echo.NewHTTPError(http.StatusInternalServerError, "権限の解決に失敗しました")
				}
				ident.Role = identity.RoleManager
				ident.ManagedHotelIDs = hotelIDs
			}

			SetIdentity(c, ident)
			return next(c)
		}
	}
}

// SetIdentity はIdentityをコンテキストに載せる
func SetIdentity(c echo.Context, ident identity.Identity) {
	c.Set(identityContextKey, ident)
}

// CurrentIdentity はコンテキストからIdentityを取り出す
func CurrentIdentity(c echo.Context) identity.Identity {
	if ident, ok := c.Get(identityContextKey).(identity.Identity); ok {
		return ident
	}
	return identity.Identity{}
}
