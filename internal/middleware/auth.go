package middleware

import (
	"context"
	"net/http"
	"time"

	"homechef-marketplace/internal/models"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// Claims is the JWT payload issued on login. The role claim is informational
// only; gated routes re-read the role from the users table on every request
// so a role change (e.g. an approved chef request) takes effect on the next
// navigation, not at the next login.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT for a given user.
func GenerateToken(user *models.User, secret string) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// JWTRequired validates the bearer token and injects the caller's identity
// into the request context.
func JWTRequired(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
		SuccessHandler: func(c echo.Context) {
			token := c.Get("user").(*jwt.Token)
			claims := token.Claims.(*Claims)
			c.Set("userID", claims.UserID)
			c.Set("userEmail", claims.Email)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Invalid or expired token"})
		},
	})
}

// RoleReader looks up the caller's current role by email.
type RoleReader interface {
	GetRoleByEmail(ctx context.Context, email string) (string, error)
}

// RoleRequired enforces that the caller currently holds one of the allowed
// roles. The role is fetched fresh from storage rather than taken from the
// token. Matching is exact: an admin token does not pass a chef-only gate.
func RoleRequired(roles RoleReader, allowed ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, ok := c.Get("userEmail").(string)
			if !ok || email == "" {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Missing identity"})
			}

			role, err := roles.GetRoleByEmail(c.Request().Context(), email)
			if err != nil {
				if err == models.ErrNotFound {
					return c.JSON(http.StatusForbidden, models.ErrorResponse{Message: "Account not found"})
				}
				c.Logger().Error("middleware.RoleRequired: ", err)
				return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to resolve role"})
			}

			for _, r := range allowed {
				if role == r {
					c.Set("userRole", role)
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, models.ErrorResponse{Message: "Access denied"})
		}
	}
}
