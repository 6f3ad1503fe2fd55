// Package seed fills a development database with usable data.
package seed

import (
	"context"
	"log/slog"

	"github.com/zestotech/cost-estimator/backend/internal/bulkimport"
	"github.com/zestotech/cost-estimator/backend/internal/repository"
	"github.com/zestotech/cost-estimator/backend/internal/utils"
)

// SeedTemplateMaterials loads the bulk upload template through the real
// import pipeline, which both seeds the catalog and keeps the template honest:
// if the template ever stops importing cleanly, seeding makes it obvious.
func SeedTemplateMaterials(ctx context.Context, repo *repository.Repository) {
	rows := bulkimport.Parse(bulkimport.Template())

	batch, err := repo.BeginMaterialBatch(ctx)
	if err != nil {
		slog.Error("failed to open material batch", "error", err)
		return
	}
	defer batch.Rollback()

	summary, err := bulkimport.Import(ctx, rows, batch)
	if err != nil {
		slog.Error("failed to save template materials", "error", err)
		return
	}

	slog.Info("seeded template materials", "success", summary.SuccessCount, "errors", summary.ErrorCount)
	for _, rowErr := range summary.Errors {
		slog.Warn("template row rejected", "row", rowErr.Row, "message", rowErr.Message)
	}
}

// SeedRandomUsers inserts n random users sharing the configured seed password.
func SeedRandomUsers(repo *repository.Repository, n int, password string) {
	cnt := n
	for i := 0; i < n; i++ {
		user, err := utils.GenerateRandomUser(password)
		if err != nil {
			slog.Error("failed to generate random user", "error", err)
			continue
		}

		if err := repo.CreateUser(user); err != nil {
			slog.Error("failed to insert user", "error", err)
			continue
		}

		cnt--
	}

	slog.Info("seeded users", "count", n-cnt)
}

// SeedRandomCustomers inserts n random customers.
func SeedRandomCustomers(repo *repository.Repository, n int) {
	cnt := n
	for i := 0; i < n; i++ {
		customer := utils.GenerateRandomCustomer()
		if err := repo.CreateCustomer(customer); err != nil {
			slog.Error("failed to insert customer", "error", err)
			continue
		}

		cnt--
	}

	slog.Info("seeded customers", "count", n-cnt)
}
