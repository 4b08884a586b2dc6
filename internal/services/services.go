package services

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/varaher/prana/internal/infrastructure/openai"
	"github.com/varaher/prana/internal/infrastructure/postgres"
	"github.com/varaher/prana/internal/infrastructure/redis"
	"github.com/varaher/prana/internal/services/chat"
	"github.com/varaher/prana/internal/services/records"
	"github.com/varaher/prana/internal/services/reminders"
	"github.com/varaher/prana/internal/services/report"
)

type Services struct {
	chatService      *chat.Implementation
	recordsService   *records.Service
	remindersService *reminders.Service
	reportService    *report.Service
	openAIService    *openai.Service
	postgresService  *postgres.Service
	redisService     *redis.Service
}

// InitializeServices initializes all required services
func InitializeServices() (*Services, error) {
	log.Info().Msg("Initializing core services")

	// Optional stores: the chat relay works without either of them
	redisService := redis.NewService()
	postgresService := postgres.NewService()

	var recordsService *records.Service
	if postgresService != nil {
		var err error
		recordsService, err = records.NewService(records.NewRepository(postgresService.DB()))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize records service: %w", err)
		}
	}

	remindersService := reminders.NewService(redisService)

	// Completion provider (required)
	openAIService := openai.NewService()
	if openAIService == nil {
		return nil, fmt.Errorf("completion provider is required for core functionality")
	}

	chatService, err := chat.NewService(openAIService, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize chat service - required for message processing")
		return nil, fmt.Errorf("failed to initialize chat service: %w", err)
	}

	reportService, err := report.NewService(openAIService, recordsService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize report service: %w", err)
	}

	log.Info().Msg("All services initialized successfully")

	return &Services{
		chatService:      chatService,
		recordsService:   recordsService,
		remindersService: remindersService,
		reportService:    reportService,
		openAIService:    openAIService,
		postgresService:  postgresService,
		redisService:     redisService,
	}, nil
}

// GetChatService returns the chat service
func (s *Services) GetChatService() *chat.Implementation {
	return s.chatService
}

// GetRecordsService returns the records service; nil when no database is configured
func (s *Services) GetRecordsService() *records.Service {
	return s.recordsService
}

// GetRemindersService returns the reminders service
func (s *Services) GetRemindersService() *reminders.Service {
	return s.remindersService
}

// GetReportService returns the report service
func (s *Services) GetReportService() *report.Service {
	return s.reportService
}
