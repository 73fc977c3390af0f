package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/walimu/core/identity"
	"github.com/trezcool/walimu/core/teacher"
)

type teacherApi struct {
	svc     *teacher.Service
	session *identity.Session
	scope   *identity.ScopeResolver
}

func registerTeacherAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	guard *identity.Guard,
	session *identity.Session,
	scope *identity.ScopeResolver,
	svc *teacher.Service,
) {
	api := teacherApi{svc: svc, session: session, scope: scope}

	// admin roster
	tg := g.Group("/teachers", jwt, guardMiddleware(session, guard, identity.ViewTeachers))
	tg.GET("", api.query)
	tg.POST("", api.create)
	tg.GET("/:id", api.retrieve)
	tg.PUT("/:id", api.update)
	tg.DELETE("/:id", api.destroy)

	// teachers manage their own record
	pg := g.Group("/profile", jwt, guardRoleMiddleware(session, guard, identity.RoleTeacher))
	pg.GET("", api.retrieveProfile)
	pg.PUT("", api.updateProfile)
}

// Handlers

func (api *teacherApi) query(ctx echo.Context) error {
	teachers, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *teacherApi) create(ctx echo.Context) error {
	var data teacher.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	t, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}
	return ctx.JSON(http.StatusCreated, t)
}

func (api *teacherApi) retrieve(ctx echo.Context) error {
	t, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == teacher.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding teacher by ID")
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *teacherApi) update(ctx echo.Context) error {
	var data teacher.UpdateTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTeacher")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	t, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == teacher.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating teacher")
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *teacherApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *teacherApi) retrieveProfile(ctx echo.Context) error {
	scopeKey, err := api.scope.Resolve(ctx.Request().Context(), api.session)
	if err != nil {
		if errors.Cause(err) == identity.ErrTeacherNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "resolving teacher scope")
	}

	t, err := api.svc.GetByID(ctx.Request().Context(), scopeKey)
	if err != nil {
		if errors.Cause(err) == teacher.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding teacher by ID")
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *teacherApi) updateProfile(ctx echo.Context) error {
	scopeKey, err := api.scope.Resolve(ctx.Request().Context(), api.session)
	if err != nil {
		if errors.Cause(err) == identity.ErrTeacherNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "resolving teacher scope")
	}

	var data teacher.UpdateProfile
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProfile")
	}
	if err = data.Validate(); err != nil {
		return err
	}

	t, err := api.svc.UpdateProfile(ctx.Request().Context(), scopeKey, data)
	if err != nil {
		if errors.Cause(err) == teacher.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating profile")
	}
	return ctx.JSON(http.StatusOK, t)
}
