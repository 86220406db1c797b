package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// TokenService checks the access cookie and rotates an expired one against
// the stored refresh token. It resolves the caller's identity once per
// request and puts the user id string and role into the echo context, so
// nothing downstream has to look at tokens.
type TokenService struct {
	DB            *gorm.DB
	JWTSecret     []byte
	RefreshSecret []byte
}

func (t *TokenService) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, rotated, newAccess, newRefresh, err := t.checkCookie(c)
		if err != nil {
			return err
		}

		if rotated {
			c.SetCookie(CreateCookie("accessToken", newAccess, "/", time.Now().Add(AccessTokenTTL)))
			c.SetCookie(CreateCookie("refreshToken", newRefresh, "/", time.Now().Add(RefreshTokenTTL)))
		}

		setUserContext(c, claims)
		return next(c)
	}
}

func (t *TokenService) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return t.RequireAuth(func(c echo.Context) error {
		if RoleFromContext(c) != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		}
		return next(c)
	})
}

func (t *TokenService) checkCookie(c echo.Context) (jwt.MapClaims, bool, string, string, error) {
	asCookie, err := c.Cookie("accessToken")
	if err == nil && asCookie.Value != "" {
		token, parseErr := jwt.Parse(asCookie.Value, func(j *jwt.Token) (interface{}, error) {
			return t.JWTSecret, nil
		})
		if parseErr == nil && token.Valid {
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return nil, false, "", "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			return claims, false, "", "", nil
		}
		if !errors.Is(parseErr, jwt.ErrTokenExpired) {
			return nil, false, "", "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
	}

	rfCookie, err := c.Cookie("refreshToken")
	if err != nil || rfCookie.Value == "" {
		return nil, false, "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing auth cookie")
	}

	claims, newAccess, newRefresh, err := t.rotateToken(rfCookie.Value)
	if err != nil {
		return nil, false, "", "", echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	return claims, true, newAccess, newRefresh, nil
}

func (t *TokenService) rotateToken(rawToken string) (jwt.MapClaims, string, string, error) {
	claims, err := ValidateRefresh(rawToken, t.RefreshSecret, t.DB)
	if err != nil {
		return nil, "", "", err
	}

	userID, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || role == "" {
		return nil, "", "", errors.New("invalid token claims")
	}

	newAccess, err := SignAccessToken(userID, role, t.JWTSecret)
	if err != nil {
		return nil, "", "", err
	}
	newRefresh, err := SignRefreshToken(userID, role, t.RefreshSecret)
	if err != nil {
		return nil, "", "", err
	}
	if err := SaveRefreshToken(t.DB, newRefresh, userID); err != nil {
		return nil, "", "", err
	}

	return claims, newAccess, newRefresh, nil
}

func setUserContext(c echo.Context, claims jwt.MapClaims) {
	if sub, ok := claims["sub"].(string); ok {
		c.Set("userID", sub)
	}
	if role, ok := claims["role"].(string); ok {
		c.Set("role", role)
	}
}

// UserIDFromContext returns the user id the middleware resolved, empty when
// unauthenticated.
func UserIDFromContext(c echo.Context) string {
	if v, ok := c.Get("userID").(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(c echo.Context) string {
	if v, ok := c.Get("role").(string); ok {
		return v
	}
	return ""
}
