package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appadmin "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/admin"
	appauth "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/auth"
	appcart "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/cart"
	appcatalog "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/catalog"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/identity"
	appinterest "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/interest"
	apporder "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/order"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/config"
	domcart "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/cart"
	domcatalog "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/catalog"
	dominterest "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/interest"
	domorder "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/order"
	domuser "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/user"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/infrastructure/audit"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/infrastructure/eventbus"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/infrastructure/id"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/infrastructure/memory"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/infrastructure/postgres"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/infrastructure/seed"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/observability"
	httppresentation "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/presentation/http"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// stores bundles the persistence surface so wiring does not care which
// backend is active.
type stores struct {
	users      domuser.Repository
	products   domcatalog.Repository
	orders     domorder.Repository
	carts      domcart.Repository
	interests  dominterest.Repository
	orderStore apporder.Store
	seedTarget seed.ProductStore
}

func main() {
	cfg := config.Load()

	baseLogger := logging.MustNewLogger(cfg.ServiceName, cfg.Env)
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	st, err := buildStores(cfg)
	if err != nil {
		baseLogger.Fatal("store_init_failed", zap.Error(err))
	}

	ctx := logging.ContextWithLogger(context.Background(), baseLogger)
	if err := seed.Apply(ctx, st.users, st.seedTarget); err != nil {
		baseLogger.Fatal("seed_failed", zap.Error(err))
	}

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	bus := eventbus.NewBus(baseLogger)
	bus.Start(context.Background())
	defer bus.Stop(context.Background())
	audit.NewRecorder(baseLogger).Register(bus)

	tokens := appauth.NewTokenManager(cfg.JWTSecret)
	authService := appauth.NewService(st.users, tokens)
	resolver := identity.NewResolver(st.users, tokens, cfg.TrustUserIDHeader)
	catalogService := appcatalog.NewService(st.products)
	cartService := appcart.NewService(st.carts, st.products)
	orderService := apporder.NewService(st.orderStore, st.orders, id.NewUUIDGenerator(), bus, metrics)
	interestService := appinterest.NewService(st.interests, st.products)
	interestService.Register(bus)
	adminService := appadmin.NewService(st.orders, st.products, st.users)

	router := httppresentation.NewRouter(httppresentation.RouterDeps{
		Auth:           authService,
		Catalog:        catalogService,
		Cart:           cartService,
		Orders:         orderService,
		Interests:      interestService,
		Admin:          adminService,
		Resolver:       resolver,
		Metrics:        metrics,
		Logger:         baseLogger,
		MetricsHandler: promhttp.Handler(),
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("http_server_start",
			zap.String("addr", server.Addr),
			zap.Bool("trust_user_id_header", cfg.TrustUserIDHeader),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Error("http_server_error", zap.Error(err))
		}
	}()

	<-runCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("http_server_shutdown_error", zap.Error(err))
	} else {
		baseLogger.Info("http_server_stopped")
	}
}

func buildStores(cfg config.Config) (*stores, error) {
	if cfg.DatabaseURL == "" {
		store := memory.NewStore()
		return &stores{
			users:      memory.NewUserRepository(),
			products:   store,
			orders:     store.OrderRepository(),
			carts:      memory.NewCartRepository(),
			interests:  memory.NewInterestRepository(),
			orderStore: store,
			seedTarget: store,
		}, nil
	}

	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(db); err != nil {
		return nil, err
	}
	products := postgres.NewProductRepository(db)
	return &stores{
		users:      postgres.NewUserRepository(db),
		products:   products,
		orders:     postgres.NewOrderRepository(db),
		carts:      postgres.NewCartRepository(db),
		interests:  postgres.NewInterestRepository(db),
		orderStore: postgres.NewOrderStore(db),
		seedTarget: products,
	}, nil
}
