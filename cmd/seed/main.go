package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/Jonp4208/cfa-eval-sub012/internal/config"
	"github.com/Jonp4208/cfa-eval-sub012/internal/repository"
	"github.com/Jonp4208/cfa-eval-sub012/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random employees, 2: insert starter template)")
	flag.IntVar(&n, "n", 0, "number of employees to insert (defaults to SEED_EMPLOYEE_COUNT)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("could not load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("could not create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open only builds the pool object, ping to actually connect
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("could not connect to the database", "error", err)
		return
	}

	// seeding does not need the employee cache
	repo := repository.NewRepository(cfg, dbpool, nil)

	if n == 0 {
		n = cfg.Seed.EmployeeCount
	}

	switch op {
	case 1:
		seed.InsertRoster(repo, n)
	case 2:
		seed.InsertStarterTemplate(repo)
	default:
		logger.Error("unknown operation", "op", op)
		os.Exit(1)
	}
}
