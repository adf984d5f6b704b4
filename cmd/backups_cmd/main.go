package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gymly/backend/internal/config"
	"github.com/gymly/backend/internal/db"
	"github.com/gymly/backend/internal/interchange"
	"github.com/gymly/backend/internal/splits"
)

func main() {
	credentialsFile := flag.String(
		"gd-creds",
		"./gymly-drive-credentials.json",
		"google drive credentials json",
	)
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	logsPath := flag.String("logs-path", "", "backup logs file path (empty for stdout)")

	flag.Parse()

	loggingSetup(*logsPath)

	log.Println("starting splits backup ...")

	if *credentialsFile == "" {
		log.Fatalln("google drive credentials json not specified")
	}

	credentialsFileBytes, err := os.ReadFile(*credentialsFile)
	if err != nil {
		log.Fatalf("unable to read client secret file: %v", err)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost: cfg.PostgresHost,
		DBPort: cfg.PostgresPort,
		DBName: cfg.PostgresDBName,
	})
	if err != nil {
		log.Fatalf("new db pool: %s", err)
	}
	defer dbPool.Close()

	exporter := interchange.NewService(splits.NewRepo(dbPool), cfg.ExportsRootPath)
	s, err := interchange.NewGoogleDriveBackupService(ctx, credentialsFileBytes, exporter)
	if err != nil {
		log.Fatalf("failed to create google drive backup service: %s", err)
	}

	if err := s.DoBackup(ctx, time.Now()); err != nil {
		log.Fatalf("%+v", err)
	}

	log.Println("splits backup done")
}

func loggingSetup(logFileName string) {
	if logFileName == "" {
		log.SetOutput(os.Stdout)
		return
	}

	if !strings.HasSuffix(logFileName, ".log") {
		logFileName += ".log"
	}

	logFile, err := os.OpenFile(logFileName, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0777)
	if err != nil {
		log.Panicf("failed to open log file %q: %s", logFileName, err)
	}

	log.SetOutput(logFile)
}
