package app

import (
	"context"
	"fmt"

	"meety/cmd/internal/config"
	"meety/cmd/internal/domain/dynamo"
	dynamorepo "meety/cmd/internal/domain/dynamo/repository"
	"meety/cmd/internal/domain/sqlite"
	sqliterepo "meety/cmd/internal/domain/sqlite/repository"
	"meety/cmd/internal/integration/aws/bedrock"
	"meety/cmd/internal/integration/aws/lex"
	"meety/cmd/internal/service"
	"meety/cmd/internal/utils/validators"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/labstack/gommon/log"
)

// App holds the services of one process. Every binary builds it once in
// main and hands the pieces it needs to its handlers.
type App struct {
	Config    *config.Config
	Meetings  *service.DefaultMeetingService
	Dialogue  *service.DefaultDialogueService
	Assistant *service.DefaultAssistantService
	// Chat is nil when no Lex bot is configured.
	Chat *service.DefaultChatService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	awsCfg, err := dynamo.LoadAWSConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	repo, err := NewRepository(cfg, awsCfg)
	if err != nil {
		return nil, err
	}

	validate := validators.New()
	meetings := service.NewMeetingService(repo, validate, config.NewLocker(cfg))

	a := &App{
		Config:    cfg,
		Meetings:  meetings,
		Dialogue:  service.NewDialogueService(meetings),
		Assistant: service.NewAssistantService(meetings, bedrock.NewClient(awsCfg, cfg.BedrockModelID)),
	}

	if cfg.BotID != "" {
		a.Chat = service.NewChatService(lex.NewClient(awsCfg, cfg.BotID, cfg.BotAliasID, cfg.LocaleID), validate)
	} else {
		log.Warn("BOT_ID is not set, chat is disabled")
	}
	return a, nil
}

// NewRepository picks the meeting store named by cfg.Store.
func NewRepository(cfg *config.Config, awsCfg aws.Config) (service.MeetingRepository, error) {
	switch cfg.Store {
	case config.StoreDynamoDB:
		client := dynamo.Init(awsCfg, cfg.DynamoEndpoint)
		return dynamorepo.NewMeetingRepository(client, cfg.Table, cfg.StatusIndex), nil
	case config.StoreSQLite:
		db, err := sqlite.Init(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store %s: %w", cfg.SQLitePath, err)
		}
		return sqliterepo.NewMeetingRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store)
	}
}
