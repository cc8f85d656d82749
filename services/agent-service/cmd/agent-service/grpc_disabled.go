//go:build !protogen

package main

import (
	"context"
	"log/slog"

	"github.com/nathan-pruitt/openhouse/libs/db"
	"github.com/nathan-pruitt/openhouse/services/agent-service/internal/storage"
)

func startGrpcServer(_ context.Context, _ *slog.Logger, _ *db.Pool, _ *storage.Repository) error {
	return nil
}
