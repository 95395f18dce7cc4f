package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/quizforge/quizforge/config"
	"github.com/quizforge/quizforge/database"
	"github.com/quizforge/quizforge/internal/importer"
	"github.com/quizforge/quizforge/internal/logger"
	"github.com/rs/zerolog/log"
)

func main() {
	clean := flag.Bool("clean", false, "delete all existing quiz data before importing")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <directory>\n\nImports every *.json quiz file from the given directory.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	dir := flag.Arg(0)

	logger.Init()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	// A fresh database must have its schema before the first import.
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	report, err := importer.New(db).Run(dir, *clean)
	if err != nil {
		log.Fatal().Err(err).Msg("Import aborted")
	}
	if report.FilesFailed > 0 || len(report.Discrepancies) > 0 {
		os.Exit(1)
	}
}
