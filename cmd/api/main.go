package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	appnotify "github.com/jhoicas/tienda-api/internal/application/notify"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/infrastructure/cache"
	infranotify "github.com/jhoicas/tienda-api/internal/infrastructure/notify"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/tienda-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de agregados: opcional, la app funciona sin Redis.
	var avgCache usecase.AverageCache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisAverageCache(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, cache de promedios deshabilitado")
		} else {
			defer redisCache.Close()
			avgCache = redisCache
		}
	}

	emailNotifier := infranotify.NewSMTPNotifier(infranotify.EmailConfig{
		AdminEmail: cfg.Notify.AdminEmail,
		FromEmail:  cfg.Notify.FromEmail,
		Host:       cfg.Notify.SMTPHost,
		Port:       cfg.Notify.SMTPPort,
		User:       cfg.Notify.SMTPUser,
		Password:   cfg.Notify.SMTPPassword,
	})
	smsNotifier := infranotify.NewAfricasTalkingNotifier(infranotify.SMSConfig{
		Username: cfg.Notify.ATUsername,
		APIKey:   cfg.Notify.ATAPIKey,
		SenderID: cfg.Notify.ATSenderID,
	})
	dispatcher := appnotify.NewDispatcher(emailNotifier, smsNotifier, cfg.Notify.TestPhone, log)

	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, avgCache)
	bulkUC := usecase.NewBulkUseCase(categoryUC, productRepo, avgCache)
	pricingUC := usecase.NewPricingUseCase(categoryRepo, productRepo, avgCache)
	orderUC := usecase.NewOrderUseCase(txRunner, productRepo, orderRepo, userRepo, dispatcher)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		JWTSecret: cfg.JWT.Secret,
		Auth:      httpRouter.NewAuthHandler(authUC),
		Category:  httpRouter.NewCategoryHandler(categoryUC),
		Product:   httpRouter.NewProductHandler(productUC, bulkUC),
		Order:     httpRouter.NewOrderHandler(orderUC),
		Pricing:   httpRouter.NewPricingHandler(pricingUC),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
