package api

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/skillswap/realtime-service/internal/config"
	"github.com/skillswap/realtime-service/internal/repository"
	"github.com/skillswap/realtime-service/internal/ws"
)

type Server struct {
	repo *repository.ExchangeRepository
	log  *zap.SugaredLogger
}

// NewServer builds the fiber app: health check, the websocket endpoint and
// the JWT-guarded message history read.
func NewServer(cfg *config.Config, gw *ws.Gateway, repo *repository.ExchangeRepository, log *zap.SugaredLogger) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	s := &Server{repo: repo, log: log}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/v1")

	v1.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	v1.Get("/ws", websocket.New(gw.Handler()))

	v1.Get("/exchanges/:id/messages", JWTAuth(cfg.App.JWTSecret), s.getMessages)

	return app
}

// getMessages returns the persisted history of one exchange, chronological,
// restricted to its two participants.
func (s *Server) getMessages(c *fiber.Ctx) error {
	ex, err := s.repo.FindExchange(c.Context(), c.Params("id"))
	if errors.Is(err, repository.ErrExchangeNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "exchange not found"})
	}
	if err != nil {
		s.log.Errorw("loading exchange history", "exchange", c.Params("id"), "err", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	userID, _ := c.Locals("userID").(string)
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil || !ex.Participant(oid) {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "not a participant"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": ex.Messages})
}
