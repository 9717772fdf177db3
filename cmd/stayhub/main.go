package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stayhub/internal/app/idempotency"
	"stayhub/internal/app/locks"
	appoutbox "stayhub/internal/app/outbox"
	"stayhub/internal/app/services/admin"
	"stayhub/internal/app/services/auth"
	"stayhub/internal/app/services/bookings"
	"stayhub/internal/app/services/chat"
	"stayhub/internal/app/services/places"
	"stayhub/internal/app/services/reviews"
	domainauth "stayhub/internal/domain/auth"
	domainbooking "stayhub/internal/domain/booking"
	domainchat "stayhub/internal/domain/chat"
	domainphoto "stayhub/internal/domain/photo"
	domainplace "stayhub/internal/domain/place"
	domainreview "stayhub/internal/domain/review"
	domainuser "stayhub/internal/domain/user"
	"stayhub/internal/infra/broker/kafka"
	"stayhub/internal/infra/cache"
	"stayhub/internal/infra/config"
	"stayhub/internal/infra/db/mongo"
	ginserver "stayhub/internal/infra/http/gin"
	"stayhub/internal/infra/obs"
	infraoutbox "stayhub/internal/infra/outbox"
	"stayhub/internal/infra/security"
	"stayhub/internal/infra/storage/memory"
	"stayhub/internal/infra/storage/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	backends, err := buildBackends(cfg, logger)
	if err != nil {
		logger.Error("backend initialization failed", "error", err)
		os.Exit(1)
	}
	defer backends.close()

	handlers := buildHandlers(cfg, logger, backends)
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: backends.ready,
	}, handlers)

	if backends.outboxWorker != nil {
		go func() {
			if err := backends.outboxWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

// backends groups the storage and messaging implementations picked at
// startup. Each external system is optional: without MONGO_URI the
// repositories are in-memory, without REDIS_ADDR sessions and
// idempotency records live in-process, without KAFKA_BROKERS events
// stay in the outbox collection.
type backends struct {
	places        domainplace.Repository
	bookings      domainbooking.Repository
	reviews       domainreview.Repository
	photos        domainphoto.Repository
	conversations domainchat.Repository
	users         domainuser.Repository
	sessions      domainauth.SessionStore
	idempotency   idempotency.Store
	outbox        appoutbox.Outbox
	blobs         places.BlobStore
	outboxWorker  *infraoutbox.Worker

	mongoClient *mongo.Client
	redisClient *cache.Client
	producer    *kafka.Producer
}

func buildBackends(cfg config.Config, logger *slog.Logger) (*backends, error) {
	b := &backends{}

	if cfg.MongoURI != "" {
		client, err := mongo.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		b.mongoClient = client
		b.places = mongo.NewPlaceRepository(client.DB)
		b.bookings = mongo.NewBookingRepository(client.DB)
		b.reviews = mongo.NewReviewRepository(client.DB)
		b.photos = mongo.NewPhotoRepository(client.DB)
		b.conversations = mongo.NewConversationRepository(client.DB)
		b.users = mongo.NewUserRepository(client.DB)
		logger.Info("mongo connected", "database", cfg.MongoDB)
	} else {
		b.places = memory.NewPlaceRepository()
		b.bookings = memory.NewBookingRepository()
		b.reviews = memory.NewReviewRepository()
		b.photos = memory.NewPhotoRepository()
		b.conversations = memory.NewConversationRepository()
		b.users = memory.NewUserRepository()
		logger.Warn("MONGO_URI not set, using in-memory repositories")
	}

	if cfg.RedisAddr != "" {
		client, err := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		b.redisClient = client
		b.sessions = cache.NewSessionStore(client)
		b.idempotency = cache.NewIdempotencyStore(client, cfg.IdempotencyTTL)
		logger.Info("redis connected", "addr", cfg.RedisAddr)
	} else {
		b.sessions = memory.NewSessionStore()
		b.idempotency = memory.NewIdempotencyStore()
		logger.Warn("REDIS_ADDR not set, using in-memory session and idempotency stores")
	}

	if cfg.S3Endpoint != "" {
		client, err := s3.NewClient(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicEndpoint, logger)
		if err != nil {
			return nil, err
		}
		b.blobs = client
		logger.Info("object storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		b.blobs = memory.NewBlobStore()
		logger.Warn("S3_ENDPOINT not set, photo binaries stay in memory")
	}

	if b.mongoClient != nil {
		store := infraoutbox.NewStore(b.mongoClient.DB)
		b.outbox = store
		if len(cfg.KafkaBrokers) > 0 {
			producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
			if err != nil {
				return nil, err
			}
			b.producer = producer
			b.outboxWorker = &infraoutbox.Worker{
				Store:       store,
				Producer:    producer,
				Logger:      logger,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				Backoff:     cfg.RetryBackoff,
			}
			logger.Info("outbox worker enabled", "brokers", cfg.KafkaBrokers)
		} else {
			logger.Warn("KAFKA_BROKERS not set, outbox events accumulate unpublished")
		}
	} else {
		b.outbox = memory.NewOutbox()
	}

	return b, nil
}

func (b *backends) ready() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if b.mongoClient != nil {
		if err := b.mongoClient.Ping(ctx); err != nil {
			return err
		}
	}
	if b.redisClient != nil {
		if err := b.redisClient.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (b *backends) close() {
	if b.producer != nil {
		_ = b.producer.Close()
	}
	if b.redisClient != nil {
		_ = b.redisClient.Close()
	}
	if b.mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = b.mongoClient.Disconnect(ctx)
	}
}

func buildHandlers(cfg config.Config, logger *slog.Logger, b *backends) ginserver.Handlers {
	keyedLocks := locks.NewKeyed()

	placeService := &places.Service{
		Places:   b.places,
		Bookings: b.bookings,
		Reviews:  b.reviews,
		Photos:   b.photos,
		Blobs:    b.blobs,
		Locks:    keyedLocks,
		Outbox:   b.outbox,
		Logger:   logger,
	}
	bookingService := &bookings.Service{
		Places:      b.places,
		Bookings:    b.bookings,
		Locks:       keyedLocks,
		Outbox:      b.outbox,
		Idempotency: b.idempotency,
		Logger:      logger,
	}
	reviewService := &reviews.Service{
		Places:  b.places,
		Reviews: b.reviews,
		Locks:   keyedLocks,
		Outbox:  b.outbox,
		Logger:  logger,
	}
	authService := &auth.Service{
		Users:      b.users,
		Sessions:   b.sessions,
		Passwords:  security.BcryptHasher{},
		Tokens:     security.RandomTokenGenerator{},
		Places:     placeService,
		SessionTTL: cfg.SessionTTL,
		Logger:     logger,
	}
	adminService := &admin.Service{
		Users:    b.users,
		Sessions: b.sessions,
		Logger:   logger,
	}
	chatService := &chat.Service{
		Conversations: b.conversations,
		Users:         b.users,
		Logger:        logger,
	}

	authMW := ginserver.AuthMiddleware{Service: authService, Logger: logger}

	return ginserver.Handlers{
		Auth:           &ginserver.AuthHandler{Service: authService, Logger: logger},
		Place:          &ginserver.PlaceHandler{Service: placeService, Logger: logger},
		Booking:        &ginserver.BookingHandler{Service: bookingService, Logger: logger},
		Review:         &ginserver.ReviewHandler{Service: reviewService, Logger: logger},
		Admin:          &ginserver.AdminHandler{Service: adminService, Logger: logger},
		Chat:           &ginserver.ChatHandler{Service: chatService, Logger: logger},
		AuthMiddleware: authMW.Handle,
	}
}
