package main

import (
	"log"
	"os"

	"github.com/trezcool/walimu/core"
	"github.com/trezcool/walimu/core/teacher"
	emailsvc "github.com/trezcool/walimu/services/email"
	logsvc "github.com/trezcool/walimu/services/logger"
	boltstore "github.com/trezcool/walimu/storage/store/bolt"
	pgstore "github.com/trezcool/walimu/storage/store/postgres"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	cli := commandLine{}

	// set up the record store; migrations need the raw postgres handle
	if core.Conf.Database.URL != "" {
		store, err := pgstore.Open(core.Conf.Database.URL)
		errAndDie(err)
		defer store.Close()
		cli.db = store.DB()
		cli.teacherSvc = newTeacherService(store)
	} else {
		store, err := boltstore.Open(core.Conf.Database.Path)
		errAndDie(err)
		defer store.Close()
		cli.teacherSvc = newTeacherService(store)
	}

	// start CLI
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func newTeacherService(store core.RecordStore) *teacher.Service {
	stdLogger := logsvc.NewStdLogger(logger)
	return teacher.NewService(store, emailsvc.NewConsoleService(), stdLogger)
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
