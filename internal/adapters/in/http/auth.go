package http

import (
	"net/http"
	"strings"

	"github.com/esp3j0/waste-transort/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// actorClaims is the token payload the gateway issues after authenticating a
// user. The role and superuser flag travel in the token; memberships do not,
// they are resolved per request.
type actorClaims struct {
	Role      string `json:"role"`
	Superuser bool   `json:"superuser"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the bearer token and stores the resulting actor in
// the request context. Requests without a valid token never reach a handler.
func AuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenString == "" {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "missing bearer token",
				})
			}

			claims := &actorClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims,
				func(_ *jwt.Token) (any, error) { return secret, nil },
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			)
			if err != nil || !token.Valid {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid token",
				})
			}

			actor, err := actorFromClaims(claims)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid token claims",
				})
			}

			ctx.Set(actorContextKey, actor)
			return next(ctx)
		}
	}
}

func actorFromClaims(claims *actorClaims) (kernel.Actor, error) {
	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.Actor{}, err
	}
	role, err := kernel.RoleFromString(claims.Role)
	if err != nil {
		return kernel.Actor{}, err
	}
	return kernel.NewActor(userID, role, claims.Superuser)
}

// actorFrom retrieves the authenticated actor stored by AuthMiddleware.
func actorFrom(ctx echo.Context) (kernel.Actor, bool) {
	actor, ok := ctx.Get(actorContextKey).(kernel.Actor)
	return actor, ok
}

// IssueToken creates a signed token for the given actor. Used by tests and
// local tooling; production tokens come from the identity gateway.
func IssueToken(secret []byte, actor kernel.Actor) (string, error) {
	claims := actorClaims{
		Role:      actor.Role().String(),
		Superuser: actor.IsSuperuser(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: actor.ID().String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
