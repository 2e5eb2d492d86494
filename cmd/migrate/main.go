package main

import (
	"database/sql"
	"flag"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/joho/godotenv"
	"github.com/rosterhq-dev/employee-manager/backend/internal/config"
	"github.com/rosterhq-dev/employee-manager/backend/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var down int
	flag.IntVar(&down, "down", 0, "number of migrations to roll back (0 migrates up)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("unable to open the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		logger.Error("unable to create the migration driver", slog.String("error", err.Error()))
		os.Exit(1)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		logger.Error("unable to read the embedded migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx", driver)
	if err != nil {
		logger.Error("unable to create the migrate instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if down > 0 {
		logger.Info("rolling back migrations", slog.Int("steps", down))
		err = m.Steps(-down)
	} else {
		err = m.Up()
	}

	switch {
	case err == nil:
		version, dirty, _ := m.Version()
		logger.Info("migrations applied", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	case err == migrate.ErrNoChange:
		logger.Info("database is already up to date")
	default:
		logger.Error("migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
