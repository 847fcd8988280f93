package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ledgerr/tigerbeetle-facade/internal/api/handler"
	"github.com/ledgerr/tigerbeetle-facade/internal/api/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(logger *slog.Logger, r *gin.Engine, rpcHandler *handler.RPCHandler) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// PostgREST-shaped RPC endpoints, paths fixed by the caller contract
	rpc := r.Group("/rpc")
	{
		rpc.POST("/create_account", rpcHandler.CreateAccount)
		rpc.POST("/record_journal_entry", rpcHandler.RecordJournalEntry)
		rpc.POST("/get_account_balance", rpcHandler.GetAccountBalance)
	}

	// Operational endpoints
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
