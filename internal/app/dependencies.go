package app

import (
	"github.com/avc/point-roulette/internal/config"
	"github.com/avc/point-roulette/internal/domain"
	"github.com/avc/point-roulette/internal/handlers"
	"github.com/avc/point-roulette/internal/repository/postgres"
	"github.com/avc/point-roulette/internal/service"
	"github.com/avc/point-roulette/internal/utils/jwt"
	"github.com/avc/point-roulette/internal/utils/password"
	"github.com/avc/point-roulette/internal/worker"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// repositories содержит все репозитории приложения
type repositories struct {
	user    domain.UserRepository
	point   domain.PointRepository
	budget  domain.BudgetRepository
	spin    domain.SpinRepository
	segment domain.SegmentRepository
	product domain.ProductRepository
	order   domain.OrderRepository
}

// services содержит все сервисы приложения
type services struct {
	auth      domain.AuthService
	points    domain.PointService
	budget    *service.BudgetService
	roulette  domain.RouletteManager
	users     domain.UserService
	products  domain.ProductService
	orders    domain.OrderService
	dashboard domain.DashboardService
}

// handlerSet содержит все хендлеры приложения
type handlerSet struct {
	auth      *handlers.AuthHandler
	points    *handlers.PointsHandler
	roulette  *handlers.RouletteHandler
	budget    *handlers.BudgetHandler
	products  *handlers.ProductsHandler
	orders    *handlers.OrdersHandler
	users     *handlers.UsersHandler
	dashboard *handlers.DashboardHandler
	health    *handlers.HealthHandler
}

// dependencies содержит все зависимости приложения
type dependencies struct {
	repos      *repositories
	services   *services
	handlers   *handlerSet
	jwtManager *jwt.Manager
	sweeper    *worker.Sweeper
}

// initDependencies создает все зависимости приложения
func initDependencies(cfg *config.Config, dbPool *pgxpool.Pool, logger *zap.Logger) *dependencies {
	// Создание репозиториев
	repos := &repositories{
		user:    postgres.NewUserRepository(dbPool),
		point:   postgres.NewPointRepository(dbPool),
		budget:  postgres.NewBudgetRepository(dbPool),
		spin:    postgres.NewSpinRepository(dbPool),
		segment: postgres.NewSegmentRepository(dbPool),
		product: postgres.NewProductRepository(dbPool),
		order:   postgres.NewOrderRepository(dbPool),
	}

	// Создание утилит
	passwordHasher := password.NewBCryptHasher(password.DefaultCost)
	jwtManager := jwt.NewManager(cfg.JWTSecret, cfg.JWTTokenTTL)

	// Создание сервисов
	pointsService := service.NewPointsService(repos.point, repos.user, cfg.PointTTLDays)
	budgetService := service.NewBudgetService(repos.budget)

	authServiceConfig := service.AuthServiceConfig{
		MinPasswordLength: cfg.MinPasswordLength,
		SignupBonus:       cfg.SignupBonus,
	}
	rouletteServiceConfig := service.RouletteServiceConfig{
		RewardMin: cfg.RewardMin,
		RewardMax: cfg.RewardMax,
		SpinCost:  cfg.SpinCost,
	}

	svcs := &services{
		auth:      service.NewAuthService(repos.user, pointsService, passwordHasher, jwtManager, authServiceConfig),
		points:    pointsService,
		budget:    budgetService,
		roulette:  service.NewRouletteService(repos.spin, repos.segment, repos.user, pointsService, budgetService, rouletteServiceConfig),
		users:     service.NewUserService(repos.user),
		products:  service.NewProductService(repos.product),
		orders:    service.NewOrderService(repos.order, repos.product, pointsService),
		dashboard: service.NewDashboardService(repos.order, repos.user, repos.product, repos.budget, repos.spin),
	}

	// Создание handlers
	hdlrs := &handlerSet{
		auth:      handlers.NewAuthHandler(svcs.auth, logger),
		points:    handlers.NewPointsHandler(svcs.points, logger),
		roulette:  handlers.NewRouletteHandler(svcs.roulette, logger),
		budget:    handlers.NewBudgetHandler(svcs.budget, logger),
		products:  handlers.NewProductsHandler(svcs.products, logger),
		orders:    handlers.NewOrdersHandler(svcs.orders, logger),
		users:     handlers.NewUsersHandler(svcs.users, logger),
		dashboard: handlers.NewDashboardHandler(svcs.dashboard, logger),
		health:    handlers.NewHealthHandler(dbPool, logger),
	}

	// Создание сборщика истекших поинтов
	sweeper := worker.NewSweeper(repos.point, pointsService, repos.user, cfg.SweepInterval, logger)

	return &dependencies{
		repos:      repos,
		services:   svcs,
		handlers:   hdlrs,
		jwtManager: jwtManager,
		sweeper:    sweeper,
	}
}
