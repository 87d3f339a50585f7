package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"

	"github.com/Rrens/teetime/internal/config"
	"github.com/Rrens/teetime/internal/repository"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	steps := flag.Int("steps", 1, "number of migrations to roll back with down")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: migrate [-steps n] up|down|version\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fail("failed to load config: %v", err)
	}

	fmt.Printf("Migrating %s database...\n", cfg.Database.Driver)

	switch command {
	case "up":
		if err := repository.RunMigrations(cfg.Database); err != nil {
			fail("%v", err)
		}
	case "down":
		m, err := repository.NewMigrator(cfg.Database)
		if err != nil {
			fail("%v", err)
		}
		defer m.Close()

		if err := m.Steps(-*steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			fail("failed to roll back: %v", err)
		}
	case "version":
		m, err := repository.NewMigrator(cfg.Database)
		if err != nil {
			fail("%v", err)
		}
		defer m.Close()

		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("no migrations applied")
			return
		}
		if err != nil {
			fail("failed to read version: %v", err)
		}
		fmt.Printf("version %d (dirty: %t)\n", version, dirty)
		return
	default:
		flag.Usage()
		os.Exit(2)
	}

	fmt.Println("done")
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
