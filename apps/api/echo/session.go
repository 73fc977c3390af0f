package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/walimu/core"
	"github.com/trezcool/walimu/core/identity"
)

type authApi struct {
	session  *identity.Session
	resolver *identity.Resolver
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, session *identity.Session, resolver *identity.Resolver) {
	api := authApi{session: session, resolver: resolver}

	ag := g.Group("/auth")
	ag.GET("/login", api.loginPrompt) // guard redirect target
	ag.POST("/login", api.login)
	ag.POST("/logout", api.logout, jwt)
}

// Handlers

func (api *authApi) loginPrompt(ctx echo.Context) error {
	return ctx.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
}

func (api *authApi) login(ctx echo.Context) error {
	var data identity.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	// reaching the login view always discards whatever session was live
	api.session.Logout()

	ident, err := api.resolver.Resolve(ctx.Request().Context(), data.Email, data.Password, data.Role)
	if err != nil {
		if errors.Cause(err) == identity.ErrInvalidCredentials {
			return core.NewValidationError(errors.New("invalid credentials"))
		}
		return errors.Wrap(err, "resolving identity")
	}
	api.session.Login(ident)

	token, err := GenerateToken(GetIdentityClaims(ident))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Identity: ident})
}

func (api *authApi) logout(ctx echo.Context) error {
	// idempotent: logging out a dead session is a no-op
	api.session.Logout()
	return ctx.NoContent(http.StatusNoContent)
}

type LoginResponse struct {
	Token    string            `json:"token"`
	Identity identity.Identity `json:"identity"`
}
