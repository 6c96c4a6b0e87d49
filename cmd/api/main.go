package main

import (
	"context"
	"os"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	"app/internal/infra/mail"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	// .envは無くても動く（本番は環境変数で渡す）
	_ = godotenv.Load()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	ctx := context.Background()

	//管理者ユーザーDB（IDプロバイダ実装が使う）
	gormDB, err := db.ConnectPostgres(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connect failed")
	}
	if err := gormDB.AutoMigrate(&model.AdminUser{}); err != nil {
		log.Fatal().Err(err).Msg("postgres migrate failed")
	}

	//注文ドキュメントDB
	mongoDB, err := db.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}

	//カート永続化
	redisClient, err := db.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}

	//Repository生成
	productRepo := infraRepo.NewProductStaticRepository()
	orderRepo := infraRepo.NewOrderMongoRepository(mongoDB)
	cartKV := infraRepo.NewRedisKV(redisClient)
	sessionKV := infraRepo.NewMemoryKV() // プロセス寿命＝タブ寿命相当
	provider := infraRepo.NewIdentityGormProvider(gormDB)
	if err := provider.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("admin seed failed")
	}

	mailer := mail.NewEmailJSMailer(
		cfg.EmailJSServiceID,
		cfg.EmailJSTemplateID,
		cfg.EmailJSPublicKey,
		cfg.EmailJSPrivateKey,
	)

	clock := &realClock{}

	//Usecase生成
	cartUC := usecase.NewCartUsecase(cartKV, productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(
		cartUC, orderRepo, mailer,
		validator.NewCheckoutValidator(), clock, log,
	)
	adminOrderUC := usecase.NewAdminOrderUsecase(orderRepo, log)

	guard := usecase.NewSessionGuard(provider, sessionKV, clock, log)
	defer guard.Close()

	//起動時は必ずログアウト状態から始める
	guard.Reset(ctx)
	go guard.Run(ctx)

	//Handler生成
	h := server.Handlers{
		Product:    handler.NewProductHandler(productRepo),
		Cart:       handler.NewCartHandler(cartUC),
		Checkout:   handler.NewCheckoutHandler(checkoutUC),
		Auth:       handler.NewAuthHandler(guard, cfg, clock),
		AdminOrder: handler.NewAdminOrderHandler(adminOrderUC),
	}

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	e := server.New(cfg, guard, h)
	if err := server.Start(e, addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
