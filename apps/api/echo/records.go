package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/walimu/core"
	"github.com/trezcool/walimu/core/class"
	"github.com/trezcool/walimu/core/document"
	"github.com/trezcool/walimu/core/identity"
	"github.com/trezcool/walimu/core/publication"
	"github.com/trezcool/walimu/core/syllabus"
)

// recordService is the shape shared by all teacher-scoped record managers.
type recordService[T, N, U any] interface {
	List(ctx context.Context, scopeKey string) ([]T, error)
	Create(ctx context.Context, scopeKey string, data N) (T, error)
	Update(ctx context.Context, scopeKey, id string, data U) error
	Delete(ctx context.Context, scopeKey, id string) error
}

type recordApi[T, N, U any] struct {
	svc     recordService[T, N, U]
	session *identity.Session
	scope   *identity.ScopeResolver
}

func registerRecordAPIs(g *echo.Group, jwt echo.MiddlewareFunc, guard *identity.Guard, opts *Options) {
	registerRecordAPI[class.Session, class.NewSession, class.UpdateSession](
		g, jwt, guard, identity.ViewClasses, "/classes", opts.ClassSvc, opts)
	registerRecordAPI[document.Document, document.NewDocument, document.UpdateDocument](
		g, jwt, guard, identity.ViewDocuments, "/documents", opts.DocumentSvc, opts)
	registerRecordAPI[syllabus.Entry, syllabus.NewEntry, syllabus.UpdateEntry](
		g, jwt, guard, identity.ViewSyllabus, "/syllabus", opts.SyllabusSvc, opts)
	registerRecordAPI[publication.Publication, publication.NewPublication, publication.UpdatePublication](
		g, jwt, guard, identity.ViewPublications, "/publications", opts.PublicationSvc, opts)
}

func registerRecordAPI[T, N, U any](
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	guard *identity.Guard,
	view identity.View,
	path string,
	svc recordService[T, N, U],
	opts *Options,
) {
	api := recordApi[T, N, U]{svc: svc, session: opts.Session, scope: opts.Scope}

	rg := g.Group(path, jwt, guardMiddleware(opts.Session, guard, view))
	rg.GET("", api.list)
	rg.POST("", api.create)
	rg.PUT("/:id", api.update)
	rg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *recordApi[T, N, U]) list(ctx echo.Context) error {
	scopeKey, err := api.scope.Resolve(ctx.Request().Context(), api.session)
	if err != nil {
		if errors.Cause(err) == identity.ErrTeacherNotFound {
			// vanished teacher record: empty data, not an error
			return ctx.JSON(http.StatusOK, []T{})
		}
		return errors.Wrap(err, "resolving teacher scope")
	}

	recs, err := api.svc.List(ctx.Request().Context(), scopeKey)
	if err != nil {
		return errors.Wrap(err, "listing records")
	}
	return ctx.JSON(http.StatusOK, recs)
}

func (api *recordApi[T, N, U]) create(ctx echo.Context) error {
	scopeKey, err := api.scope.Resolve(ctx.Request().Context(), api.session)
	if err != nil {
		if errors.Cause(err) == identity.ErrTeacherNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "resolving teacher scope")
	}

	var data N
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding record")
	}

	rec, err := api.svc.Create(ctx.Request().Context(), scopeKey, data)
	if err != nil {
		return errors.Wrap(err, "creating record")
	}
	return ctx.JSON(http.StatusCreated, rec)
}

func (api *recordApi[T, N, U]) update(ctx echo.Context) error {
	scopeKey, err := api.scope.Resolve(ctx.Request().Context(), api.session)
	if err != nil {
		if errors.Cause(err) == identity.ErrTeacherNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "resolving teacher scope")
	}

	var data U
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding record")
	}

	if err = api.svc.Update(ctx.Request().Context(), scopeKey, ctx.Param("id"), data); err != nil {
		if errors.Cause(err) == core.ErrRecordNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating record")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *recordApi[T, N, U]) destroy(ctx echo.Context) error {
	scopeKey, err := api.scope.Resolve(ctx.Request().Context(), api.session)
	if err != nil {
		if errors.Cause(err) == identity.ErrTeacherNotFound {
			// no scope means nothing owned, nothing to delete
			return ctx.NoContent(http.StatusNoContent)
		}
		return errors.Wrap(err, "resolving teacher scope")
	}

	if err = api.svc.Delete(ctx.Request().Context(), scopeKey, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting record")
	}
	return ctx.NoContent(http.StatusNoContent)
}
