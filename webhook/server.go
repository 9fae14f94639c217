// Package webhook exposes the fulfillment service over HTTP for the NLU
// platform to call.
package webhook

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	contractx "github.com/petersparlor/parlor-fulfillment/dialogue/contract"
)

type Config struct {
	Port int    `split_words:"true" default:"8080"`
	Mode string `split_words:"true" default:"release"`
}

// TurnService is the dialogue core as consumed by the HTTP layer.
type TurnService interface {
	Handle(ctx context.Context, req contractx.WebhookRequest) (contractx.WebhookResponse, error)
}

type Server struct {
	engine *gin.Engine
	svc    TurnService
	port   int
}

func NewServer(svc TurnService, cfg Config) (*Server, error) {
	if svc == nil {
		return nil, errors.New("turn service is required")
	}
	if cfg.Port <= 0 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}

	gin.SetMode(cfg.Mode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine: engine,
		svc:    svc,
		port:   cfg.Port,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.POST("/v1/fulfillment", s.handleFulfillment)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

// Run blocks serving HTTP until the listener fails.
func (s *Server) Run() error {
	return s.engine.Run(fmt.Sprintf(":%d", s.port))
}
