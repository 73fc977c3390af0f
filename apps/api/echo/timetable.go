package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/walimu/core/identity"
	"github.com/trezcool/walimu/core/timetable"
)

type timetableApi struct {
	svc *timetable.Service
}

func registerTimetableAPI(g *echo.Group, jwt echo.MiddlewareFunc, guard *identity.Guard, session *identity.Session, svc *timetable.Service) {
	api := timetableApi{svc: svc}
	g.GET("/timetable", api.list, jwt, guardMiddleware(session, guard, identity.ViewTimetable))
}

func (api *timetableApi) list(ctx echo.Context) error {
	entries, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing timetable")
	}
	return ctx.JSON(http.StatusOK, entries)
}
