//go:build !protogen

package main

import (
	"context"
	"log/slog"

	"github.com/nathan-pruitt/openhouse/libs/db"
)

func startGrpcServer(_ context.Context, logger *slog.Logger, _ *db.Pool) error {
	logger.Info("grpc server disabled (build without protogen tag)")
	return nil
}
