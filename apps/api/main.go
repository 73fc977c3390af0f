package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	echoapi "github.com/trezcool/walimu/apps/api/echo"
	"github.com/trezcool/walimu/core"
	"github.com/trezcool/walimu/core/class"
	"github.com/trezcool/walimu/core/dashboard"
	"github.com/trezcool/walimu/core/document"
	"github.com/trezcool/walimu/core/identity"
	"github.com/trezcool/walimu/core/publication"
	"github.com/trezcool/walimu/core/syllabus"
	"github.com/trezcool/walimu/core/teacher"
	"github.com/trezcool/walimu/core/timetable"
	emailsvc "github.com/trezcool/walimu/services/email"
	logsvc "github.com/trezcool/walimu/services/logger"
	boltstore "github.com/trezcool/walimu/storage/store/bolt"
	pgstore "github.com/trezcool/walimu/storage/store/postgres"
)

func main() {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	var logger core.Logger
	if core.Conf.Debug {
		logger = logsvc.NewStdLogger(stdLogger)
	} else {
		logger = logsvc.NewRollbarLogger(stdLogger, core.Conf)
	}

	// set up the record store
	store, err := openStore()
	errAndDie(stdLogger, err)
	defer store.Close()

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	session := identity.NewSession()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Address:        core.Conf.Server.Address(),
			Session:        session,
			Resolver:       identity.NewResolver(store, nil),
			Scope:          identity.NewScopeResolver(store, logger),
			TeacherSvc:     teacher.NewService(store, mailSvc, logger),
			ClassSvc:       class.NewService(store),
			DocumentSvc:    document.NewService(store),
			SyllabusSvc:    syllabus.NewService(store),
			PublicationSvc: publication.NewService(store),
			TimetableSvc:   timetable.NewService(store),
			DashboardSvc:   dashboard.NewService(store, logger),
			Logger:         logger,
		},
		shutdown,
	)
	go app.Start()

	<-shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	errAndDie(stdLogger, app.Stop(ctx))
}

// openStore connects to postgres when a database URL is configured and falls
// back to the embedded bolt file otherwise.
func openStore() (core.RecordStore, error) {
	if core.Conf.Database.URL != "" {
		return pgstore.Open(core.Conf.Database.URL)
	}
	return boltstore.Open(core.Conf.Database.Path)
}

func errAndDie(logger *log.Logger, err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
