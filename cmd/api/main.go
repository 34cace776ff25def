package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	apivaluation "financeanalyst/pkg/api/valuation"
	"financeanalyst/pkg/core/audit"
)

func main() {
	// Load environment variables
	godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Audit trail: postgres when DATABASE_URL is set, memory otherwise.
	var sink audit.Sink
	ctx := context.Background()
	if os.Getenv("DATABASE_URL") != "" {
		if pool, err := audit.OpenPool(ctx); err != nil {
			logger.Warn("audit database unavailable, falling back to memory", zap.Error(err))
		} else {
			defer pool.Close()
			pg := audit.NewPostgresSink(pool)
			if err := pg.InitSchema(ctx); err != nil {
				logger.Warn("audit schema init failed, falling back to memory", zap.Error(err))
			} else {
				sink = pg
			}
		}
	}
	if sink == nil {
		sink = audit.NewMemorySink(10_000)
	}

	mux := http.NewServeMux()
	handler := apivaluation.NewHandler(logger, audit.NewLog(sink))
	handler.Register(mux)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8090"
	}
	logger.Info("valuation API listening", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
