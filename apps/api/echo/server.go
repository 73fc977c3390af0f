package echoapi

import (
	"context"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/walimu/core"
	"github.com/trezcool/walimu/core/class"
	"github.com/trezcool/walimu/core/dashboard"
	"github.com/trezcool/walimu/core/document"
	"github.com/trezcool/walimu/core/identity"
	"github.com/trezcool/walimu/core/publication"
	"github.com/trezcool/walimu/core/syllabus"
	"github.com/trezcool/walimu/core/teacher"
	"github.com/trezcool/walimu/core/timetable"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool

		Session  *identity.Session
		Resolver *identity.Resolver
		Scope    *identity.ScopeResolver

		TeacherSvc     *teacher.Service
		ClassSvc       *class.Service
		DocumentSvc    *document.Service
		SyllabusSvc    *syllabus.Service
		PublicationSvc *publication.Service
		TimetableSvc   *timetable.Service
		DashboardSvc   *dashboard.Service

		Logger core.Logger
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options, shutdown chan os.Signal) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		shutdown: shutdown,
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = core.Conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)
	guard := identity.NewGuard(s.opts.Session)

	registerAuthAPI(v1, jwt, s.opts.Session, s.opts.Resolver)
	registerDashboardAPI(v1, jwt, guard, s.opts.Session, s.opts.Scope, s.opts.DashboardSvc)
	registerRecordAPIs(v1, jwt, guard, s.opts)
	registerTimetableAPI(v1, jwt, guard, s.opts.Session, s.opts.TimetableSvc)
	registerTeacherAPI(v1, jwt, guard, s.opts.Session, s.opts.Scope, s.opts.TeacherSvc)
}

// signalShutdown interrupts the process when an unrecoverable error is caught.
func (s *server) signalShutdown() {
	if s.shutdown != nil {
		s.shutdown <- os.Interrupt
	}
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Walimu API!")
}
