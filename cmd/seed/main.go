package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/zestotech/cost-estimator/backend/internal/config"
	"github.com/zestotech/cost-estimator/backend/internal/repository"
	"github.com/zestotech/cost-estimator/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation (1: random users, 2: template materials, 3: random customers)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not dial, ping to surface connection problems now.
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		if n <= 0 {
			slog.Error("please pass a valid user count")
		} else {
			seed.SeedRandomUsers(repo, n, cfg.Seed.User.Password)
		}
	case 2:
		importCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ImportTimeout)*time.Second)
		defer cancel()
		seed.SeedTemplateMaterials(importCtx, repo)
	case 3:
		if n <= 0 {
			slog.Error("please pass a valid customer count")
		} else {
			seed.SeedRandomCustomers(repo, n)
		}
	default:
		slog.Error("unknown operation", "op", op)
	}
}
