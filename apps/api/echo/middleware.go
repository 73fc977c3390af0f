package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/walimu/core/identity"
)

// viewPaths maps guard redirect targets to their API routes.
var viewPaths = map[identity.View]string{
	identity.ViewLogin:     "/v1/auth/login",
	identity.ViewDashboard: "/v1/dashboard",
}

// guardMiddleware gates a route behind the view guard. Denied requests are
// never shown an error page: unauthenticated callers bounce to login, callers
// of the wrong role bounce to their own dashboard. A token minted for
// anything but the live session is rejected outright.
func guardMiddleware(sess *identity.Session, guard *identity.Guard, view identity.View) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if decision := guard.AuthorizeView(view); !decision.Allow {
				return ctx.Redirect(http.StatusFound, viewPaths[decision.Redirect])
			}
			if _, err := getContextIdentity(ctx, sess); err != nil {
				return err
			}
			return next(ctx)
		}
	}
}

// guardRoleMiddleware gates a route on a role directly, for routes without a
// declared view of their own.
func guardRoleMiddleware(sess *identity.Session, guard *identity.Guard, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if decision := guard.Authorize(role); !decision.Allow {
				return ctx.Redirect(http.StatusFound, viewPaths[decision.Redirect])
			}
			if _, err := getContextIdentity(ctx, sess); err != nil {
				return err
			}
			return next(ctx)
		}
	}
}
