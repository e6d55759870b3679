package gateway

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JoelCodes/w6d4-lecture-auth/internal/config"
	"github.com/JoelCodes/w6d4-lecture-auth/internal/token"
)

// App is the gateway process: one websocket endpoint plus health and
// metrics. It deliberately takes nothing from the auth server's infra
// beyond the token secret in config.
type App struct {
	httpServer *http.Server
}

// Router assembles the gateway's HTTP surface.
func Router(cfg config.Config) *gin.Engine {
	verifier := token.NewVerifier([]byte(cfg.TokenSecret))

	registry := prometheus.NewRegistry()
	gw := New(verifier, NewMetrics(registry))

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/ws", gw.HandleWS)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	))

	return router
}

func NewApp(cfg config.Config) (*App, error) {
	server := &http.Server{
		Addr:    ":" + cfg.GatewayPort,
		Handler: Router(cfg),
	}

	return &App{httpServer: server}, nil
}

func (a *App) Run() error {
	return a.httpServer.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.httpServer.Shutdown(ctx)
}
