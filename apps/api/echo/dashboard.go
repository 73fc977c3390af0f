package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/walimu/core/dashboard"
	"github.com/trezcool/walimu/core/identity"
)

type dashboardApi struct {
	session *identity.Session
	scope   *identity.ScopeResolver
	svc     *dashboard.Service
}

func registerDashboardAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	guard *identity.Guard,
	session *identity.Session,
	scope *identity.ScopeResolver,
	svc *dashboard.Service,
) {
	api := dashboardApi{session: session, scope: scope, svc: svc}
	g.GET("/dashboard", api.retrieve, jwt, guardMiddleware(session, guard, identity.ViewDashboard))
}

// retrieve serves the landing view matching the caller's role.
func (api *dashboardApi) retrieve(ctx echo.Context) error {
	ident, err := getContextIdentity(ctx, api.session)
	if err != nil {
		return err
	}

	switch identity.DashboardFor(ident.Role) {
	case identity.AdminDashboard:
		return ctx.JSON(http.StatusOK, api.svc.AdminStats(ctx.Request().Context()))
	default:
		scopeKey, err := api.scope.Resolve(ctx.Request().Context(), api.session)
		if err != nil && errors.Cause(err) != identity.ErrTeacherNotFound {
			return errors.Wrap(err, "resolving teacher scope")
		}
		// a vanished teacher record degrades to empty stats
		return ctx.JSON(http.StatusOK, api.svc.TeacherStats(ctx.Request().Context(), scopeKey))
	}
}
