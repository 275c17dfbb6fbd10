package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appai "github.com/jhoicas/servihogar-api/internal/application/ai"
	"github.com/jhoicas/servihogar-api/internal/application/appointments"
	"github.com/jhoicas/servihogar-api/internal/application/crm"
	"github.com/jhoicas/servihogar-api/internal/application/fiscal"
	"github.com/jhoicas/servihogar-api/internal/application/inventory"
	"github.com/jhoicas/servihogar-api/internal/application/notifications"
	"github.com/jhoicas/servihogar-api/internal/application/orders"
	"github.com/jhoicas/servihogar-api/internal/application/ports"
	"github.com/jhoicas/servihogar-api/internal/domain/repository"
	infraai "github.com/jhoicas/servihogar-api/internal/infrastructure/ai"
	"github.com/jhoicas/servihogar-api/internal/infrastructure/cache"
	"github.com/jhoicas/servihogar-api/internal/infrastructure/cfdi"
	"github.com/jhoicas/servihogar-api/internal/infrastructure/memory"
	"github.com/jhoicas/servihogar-api/internal/infrastructure/messaging"
	infrapdf "github.com/jhoicas/servihogar-api/internal/infrastructure/pdf"
	"github.com/jhoicas/servihogar-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/servihogar-api/internal/interfaces/http"
	"github.com/jhoicas/servihogar-api/pkg/config"
	"github.com/jhoicas/servihogar-api/pkg/logger"
)

type txRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

// persistence agrupa lo que cada driver aporta a los casos de uso.
type persistence struct {
	tx           txRunner
	repos        repository.Repos
	appointments repository.AppointmentRepository
	aiLog        repository.AIInteractionRepository
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openPersistence(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer store.close()

	// Caché de notificaciones (opcional). Sin Redis se lee directo del repositorio.
	var notifCache notifications.Cache
	if cfg.Redis.Enabled() {
		rdb, err := cache.New(ctx, cache.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, caché deshabilitada")
		} else {
			defer rdb.Close()
			notifCache = cache.NewCache(rdb, "notifications", cfg.Redis.TTL())
		}
	}
	notificationsUC := notifications.NewUseCase(store.repos.Notifications, notifCache, log.Component("notifications"))

	// Avisos por WhatsApp solo si hay token configurado.
	var messenger ports.Messenger
	if cfg.WhatsApp.Token != "" {
		messenger = messaging.NewWhatsAppClient(cfg.WhatsApp.APIURL, cfg.WhatsApp.Token, cfg.WhatsApp.PhoneID)
	}

	ordersUC := orders.NewUseCase(store.tx, notificationsUC, log.Component("orders"))
	inventoryUC := inventory.NewUseCase(store.tx, store.repos.Products, store.repos.Movements,
		infrapdf.NewMarotoKardexGenerator(cfg.App.Name), log.Component("inventory"))
	crmUC := crm.NewConvertLeadUseCase(store.tx, log.Component("crm"))
	fiscalUC := fiscal.NewUseCase(store.tx, store.repos.Fiscal, cfdi.NewParser(), log.Component("fiscal"))
	appointmentsUC := appointments.NewUseCase(store.appointments, store.repos.Clients, messenger, log.Component("appointments"))

	anthropicSvc := infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel, "")
	aiUC := appai.NewUseCase(anthropicSvc, store.aiLog, log.Component("ai"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ServiHogar API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		OrdersUC:        ordersUC,
		InventoryUC:     inventoryUC,
		CRMUC:           crmUC,
		FiscalUC:        fiscalUC,
		NotificationsUC: notificationsUC,
		AppointmentsUC:  appointmentsUC,
		AIUC:            aiUC,
		JWTSecret:       cfg.JWT.Secret,
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

// openPersistence elige el driver según DB_DRIVER.
func openPersistence(ctx context.Context, cfg config.DBConfig) (*persistence, error) {
	if cfg.Driver == config.DriverMemory {
		store := memory.NewStore()
		return &persistence{
			tx:           memory.NewTxRunner(store),
			repos:        store.Repos(),
			appointments: store.AppointmentRepository(),
			aiLog:        store.AIInteractionRepository(),
			close:        func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &persistence{
		tx:           postgres.NewTxRunner(pool),
		repos:        postgres.Repos(pool),
		appointments: postgres.NewAppointmentRepository(pool),
		aiLog:        postgres.NewAIInteractionRepository(pool),
		close:        pool.Close,
	}, nil
}
