package bootstrap

import (
	"context"
	"log"

	"articlegen-be/internal/config"
	"articlegen-be/internal/constant"
	"articlegen-be/internal/controller"
	"articlegen-be/internal/pkg/logger"
	"articlegen-be/internal/pkg/mailer"
	"articlegen-be/internal/repository/memory"
	"articlegen-be/internal/repository/unitofwork"
	"articlegen-be/internal/service"
	"articlegen-be/internal/websocket"
	"articlegen-be/pkg/blob"
	"articlegen-be/pkg/embedding"
	"articlegen-be/pkg/extractor"
	"articlegen-be/pkg/llm"
	"articlegen-be/pkg/llm/factory"
	"articlegen-be/pkg/rag/index"
	"articlegen-be/pkg/rag/search"

	pktNats "articlegen-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	OAuthController        controller.IOAuthController
	ArticleController      controller.IArticleController
	SourceController       controller.ISourceController
	GenerationController   controller.IGenerationController
	NotificationController controller.INotificationController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	WebSocketHub *websocket.Hub
	Logger       logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.App.ClientURL,
	)

	// 2. Event bus (in-process embed pipeline)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}
	embeddingProvider = embedding.NewResilientProvider(embeddingProvider, 3)

	baseLLM, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	var llmProvider llm.LLMProvider = llm.NewResilientProvider(baseLLM, 3)
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Storage and retrieval
	blobStore, err := blob.NewLocalStore(cfg.Storage.UploadDir, cfg.App.BaseURL)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize blob store: %v", err)
	}
	textExtractor := extractor.New(llmProvider)

	ragLogger := log.Default()
	ragIndex := index.NewIndex(uowFactory, embeddingProvider, ragLogger)
	searchTool := search.NewTool(ragIndex, llmProvider, ragLogger)
	runRepo := memory.NewRunRepository()

	// 5. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 6. Services
	publisherService := service.NewPublisherService(constant.EmbedSourceTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		constant.EmbedSourceTopic,
		ragIndex,
		natsPub,
	)

	authService := service.NewAuthService(uowFactory, emailService, natsPub, cfg)
	oauthService := service.NewOAuthService(uowFactory, cfg)

	articleService := service.NewArticleService(uowFactory, ragIndex, blobStore)
	sourceService := service.NewSourceService(
		uowFactory,
		ragIndex,
		searchTool,
		blobStore,
		textExtractor,
		publisherService,
	)
	generationService := service.NewGenerationService(
		uowFactory,
		llmProvider,
		searchTool,
		runRepo,
		natsPub,
		ragLogger,
		cfg.Generation,
	)

	notifService := service.NewNotificationService(
		uowFactory,
		natsSub,
		wsHub,
		emailService,
		cfg.App.ClientURL,
		wsLogger,
	)
	if natsSub != nil {
		go notifService.Start()
	}

	// 7. Controllers
	return &Container{
		AuthController:         controller.NewAuthController(authService),
		OAuthController:        controller.NewOAuthController(oauthService),
		ArticleController:      controller.NewArticleController(articleService),
		SourceController:       controller.NewSourceController(sourceService),
		GenerationController:   controller.NewGenerationController(generationService),
		NotificationController: controller.NewNotificationController(notifService, wsHub, wsLogger),

		ConsumerService: consumerService,

		WebSocketHub: wsHub,
		Logger:       sysLogger,
	}
}
