package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rosterhq-dev/employee-manager/backend/internal/config"
	"github.com/rosterhq-dev/employee-manager/backend/internal/repository"
	"github.com/rosterhq-dev/employee-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var ownerID int64

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random accounts, 2: insert random employee records)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Int64Var(&ownerID, "owner-id", 0, "account id that owns the inserted employee records")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("unable to create database connection pool", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open only builds the pool, it does not connect; ping explicitly
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("unable to connect to the database", "error", err)
		os.Exit(1)
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		if n <= 0 {
			slog.Error("please provide a valid number of accounts")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			account, err := utils.GenerateRandomAccount(cfg.Seed.AccountPassword)
			if err != nil {
				slog.Error("unable to generate a random account", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateAccount(account); err != nil {
				slog.Error("unable to insert account", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("accounts inserted", slog.Int("count", n-cnt))
	case 2:
		if n <= 0 {
			slog.Error("please provide a valid number of employee records")
			return
		}
		if ownerID <= 0 {
			slog.Error("please provide a valid owner account id")
			return
		}

		// make sure the owner actually exists before stamping records
		if _, err := repo.GetAccountByID(ownerID); err != nil {
			slog.Error("unable to load the owner account", slog.String("error", err.Error()))
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			employee := utils.GenerateRandomEmployee(ownerID)
			if err := repo.CreateEmployee(employee); err != nil {
				slog.Error("unable to insert employee record", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("employee records inserted", slog.Int("count", n-cnt))
	default:
		slog.Error("unknown operation")
	}
}
