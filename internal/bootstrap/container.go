package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/config"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/constant"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/controller"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/pkg/logger"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/repository/contract"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/repository/implementation"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/repository/memory"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/repository/redisstore"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/service"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/embedding"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/llm/factory"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/answer"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/dispatch"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/engine"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/followup"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/history"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/intent"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/sqlgen"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/qa/state"

	pktNats "github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	ChatController controller.IChatController

	// Background services, exposed for main.go to run
	AuditService service.IAuditService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	qaLogger := logger.NewIsolatedLogger("logs/qa_engine.log")

	// Event bus (in-process)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// Embedding provider, wrapped with a bounded query-path retry
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIKey, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	}
	embeddingProvider = embedding.NewRetryingProvider(embeddingProvider, 3, 500*time.Millisecond)

	// LLM provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OpenAIKey,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Conversation state store
	var stateRepo contract.ConversationStateRepository
	if cfg.App.StateStore == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		stateRepo = redisstore.NewStateRepository(rdb)
		log.Printf("[INFO] Using conversation state store: REDIS")
	} else {
		stateRepo = memory.NewStateRepository()
		log.Printf("[INFO] Using conversation state store: MEMORY")
	}

	// NATS (optional; chat works without it)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Repositories
	workflowRepo := implementation.NewWorkflowRepository(db)
	chunkRepo := implementation.NewContractChunkRepository(db)
	textRepo := implementation.NewContractTextRepository(db)
	sessionRepo := implementation.NewChatSessionRepository(db)
	messageRepo := implementation.NewChatMessageRepository(db)
	queryLogRepo := implementation.NewQueryLogRepository(db)
	queryRunner := implementation.NewQueryRunner(db)
	schemaRepo := implementation.NewSchemaRepository(db)

	// Query pipeline
	stateManager := state.NewManager(qaLogger)
	compressor := history.NewCompressor(llmProvider, qaLogger)
	resolver := followup.NewResolver(llmProvider, qaLogger)
	classifier := intent.NewClassifier(llmProvider, qaLogger)
	generator := sqlgen.NewGenerator(llmProvider, schemaRepo, qaLogger)
	dispatcher := dispatch.NewDispatcher(chunkRepo, textRepo, workflowRepo, queryRunner, embeddingProvider, generator, qaLogger)
	synthesizer := answer.NewSynthesizer(llmProvider, qaLogger)

	qaEngine := engine.NewEngine(
		stateManager,
		compressor,
		resolver,
		classifier,
		dispatcher,
		synthesizer,
		time.Duration(cfg.Ai.CompletionTimeout)*time.Second,
		qaLogger,
	)

	// Services
	publisherService := service.NewPublisherService(constant.TopicTurnAudit, pubSub)
	auditService := service.NewAuditService(pubSub, constant.TopicTurnAudit, queryLogRepo, natsPub, sysLogger)
	chatService := service.NewChatService(sessionRepo, messageRepo, stateRepo, qaEngine, publisherService, sysLogger)

	return &Container{
		ChatController: controller.NewChatController(chatService),
		AuditService:   auditService,
	}
}
