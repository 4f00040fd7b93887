package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"HealthAssistant/database"
	chatHandler "HealthAssistant/internal/api/chat/handler"
	chatService "HealthAssistant/internal/api/chat/service"
	"HealthAssistant/internal/api/faq"
	faqHandler "HealthAssistant/internal/api/faq/handler"
	faqRepository "HealthAssistant/internal/api/faq/repository"
	faqService "HealthAssistant/internal/api/faq/service"
	"HealthAssistant/internal/middleware"
	"HealthAssistant/internal/scope"
	"HealthAssistant/pkg/intent"
	"HealthAssistant/pkg/redis"
	"HealthAssistant/pkg/responder"
	"HealthAssistant/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine       *fiber.App
	db           *sqlx.DB
	log          *logrus.Logger
	middleware   middleware.Middleware
	validator    *validator.Validate
	utils        utils.IUtils
	handlers     []handler
	redisServer  redis.IRedis
	historyStore scope.HistoryStore
	classifier   intent.IClassifier
	responder    responder.IResponder
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if server.responder == nil {
		return nil, fmt.Errorf("responder is required")
	}
	if server.classifier == nil {
		return nil, fmt.Errorf("intent classifier is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := database.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

// WithHistoryStore selects where conversation history lives from
// HISTORY_BACKEND. Redis requires WithRedisServer to be applied first.
func WithHistoryStore() ServerOption {
	return func(s *Server) error {
		ttl := sessionTTL()

		switch strings.ToLower(os.Getenv("HISTORY_BACKEND")) {
		case "", "memory":
			if middleware.ScopeModeFromEnv() == middleware.ScopeModeGlobal {
				// the process-wide conversation lives as long as the process
				ttl = 0
			}
			s.historyStore = scope.NewMemoryStore(sessionMaxScopes(), ttl)
		case "redis":
			if s.redisServer == nil {
				return fmt.Errorf("redis history backend requires a redis server")
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.redisServer.Ping(ctx); err != nil {
				return fmt.Errorf("redis history backend unreachable: %w", err)
			}
			s.historyStore = scope.NewRedisStore(s.redisServer, ttl)
		default:
			return fmt.Errorf("unsupported history backend %q", os.Getenv("HISTORY_BACKEND"))
		}
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		if s.utils == nil {
			s.utils = utils.New()
		}
		s.middleware = middleware.New(s.log, s.utils)
		return nil
	}
}

func WithIntentClassifier() ServerOption {
	return func(s *Server) error {
		table, err := intent.LoadTableOrDefault(os.Getenv("INTENT_KEYWORDS_FILE"))
		if err != nil {
			return fmt.Errorf("failed to load intent table: %w", err)
		}
		classifier, err := intent.NewClassifier(table)
		if err != nil {
			return fmt.Errorf("failed to build intent classifier: %w", err)
		}
		s.classifier = classifier
		return nil
	}
}

func WithResponder(r responder.IResponder) ServerOption {
	return func(s *Server) error {
		s.responder = r
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler(ctx context.Context) error {
	if s.historyStore == nil {
		s.historyStore = scope.NewMemoryStore(sessionMaxScopes(), sessionTTL())
	}

	// FAQ Domain
	faqRepo := faqRepository.New(s.db, s.log)
	faqServices := faqService.NewFAQService(s.log, faqRepo, faq.SampleFAQs)
	if err := faqServices.Bootstrap(ctx); err != nil {
		return fmt.Errorf("failed to bootstrap faq store: %w", err)
	}
	faqHandlers := faqHandler.New(s.log, s.middleware, faqServices)

	// Chat Domain
	scopeManager := scope.NewManager(s.historyStore)
	chatServices := chatService.NewChatService(s.log, scopeManager, s.classifier, faqServices, s.responder)
	chatHandlers := chatHandler.New(s.log, s.validator, s.middleware, chatServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, faqHandlers, chatHandlers)

	return nil
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())
	router := s.engine.Group("/api/v1")

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) Shutdown(timeout time.Duration) error {
	err := s.engine.ShutdownWithTimeout(timeout)

	if c, ok := s.responder.(io.Closer); ok {
		if cerr := c.Close(); cerr != nil {
			s.log.Errorf("Failed to close generative model: %v", cerr)
		}
	}
	if s.redisServer != nil {
		if cerr := s.redisServer.Close(); cerr != nil {
			s.log.Errorf("Failed to close redis: %v", cerr)
		}
	}
	if s.db != nil {
		if cerr := s.db.Close(); cerr != nil {
			s.log.Errorf("Failed to close database: %v", cerr)
		}
	}

	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
			"ready":   s.responder.Ready(),
		})
	})

	s.engine.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.SendString("OK")
	})
}

func sessionTTL() time.Duration {
	ttl, err := time.ParseDuration(os.Getenv("SESSION_TTL"))
	if err != nil || ttl <= 0 {
		return 24 * time.Hour
	}
	return ttl
}

func sessionMaxScopes() int {
	n, err := strconv.Atoi(os.Getenv("SESSION_MAX_SCOPES"))
	if err != nil || n <= 0 {
		return scope.DefaultMaxScopes
	}
	return n
}
