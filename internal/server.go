package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/gymly/backend/internal/auth"
	"github.com/gymly/backend/internal/config"
	"github.com/gymly/backend/internal/db"
	"github.com/gymly/backend/internal/history"
	"github.com/gymly/backend/internal/interchange"
	"github.com/gymly/backend/internal/middleware"
	"github.com/gymly/backend/internal/misc"
	"github.com/gymly/backend/internal/settings"
	"github.com/gymly/backend/internal/splits"
	"github.com/gymly/backend/internal/stats"
	"github.com/gymly/backend/internal/syncer"
	"github.com/gymly/backend/internal/telemetry/metrics"
	"github.com/gymly/backend/internal/telemetry/tracing"
	"github.com/gymly/backend/internal/weights"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	syncDebouncer *syncer.Debouncer

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	AdminUsername           string
	AdminPasswordHash       string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": "gymly_db"},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0) // will be set to 1 when all is set and ran

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewAuthService(&auth.Admin{
		Username:     params.AdminUsername,
		PasswordHash: params.AdminPasswordHash,
	}, auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "gymly-backend", rdb)
	if err != nil {
		return nil, err
	}

	return &Server{
		config:      params.Config,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	settingsRepo := settings.NewRepo(s.dbPool)
	splitsRepo := splits.NewRepo(s.dbPool)
	historyRepo := history.NewRepo(s.dbPool)
	weightsRepo := weights.NewRepo(s.dbPool)

	statsService := stats.NewService(stats.NewRepo(s.dbPool))
	splitsService := splits.NewService(splitsRepo, settingsRepo, statsService)
	historyService := history.NewService(historyRepo, splitsRepo)

	splitsHandler := splits.NewHandler(splitsService, s.metricsManager)
	r.HandleFunc("/splits", splitsHandler.HandleNewSplit).Methods("POST", "OPTIONS").Name("new-split")
	r.HandleFunc("/splits", splitsHandler.HandleListSplits).Methods("GET", "OPTIONS").Name("list-splits")
	r.HandleFunc("/splits/active", splitsHandler.HandleGetActiveSplit).Methods("GET", "OPTIONS").Name("active-split")
	r.HandleFunc("/splits/cursor", splitsHandler.HandleGetCursor).Methods("GET", "OPTIONS").Name("get-cursor")
	r.HandleFunc("/splits/cursor/advance", splitsHandler.HandleAdvanceCursor).Methods("POST", "OPTIONS").Name("advance-cursor")
	r.HandleFunc("/splits/{id}", splitsHandler.HandleGetSplit).Methods("GET", "OPTIONS").Name("get-split")
	r.HandleFunc("/splits/{id}", splitsHandler.HandleRenameSplit).Methods("PUT", "OPTIONS").Name("rename-split")
	r.HandleFunc("/splits/{id}", splitsHandler.HandleDeleteSplit).Methods("DELETE", "OPTIONS").Name("delete-split")
	r.HandleFunc("/splits/{id}/activate", splitsHandler.HandleActivateSplit).Methods("POST", "OPTIONS").Name("activate-split")
	r.HandleFunc("/days/{id}/exercises", splitsHandler.HandleAddExercise).Methods("POST", "OPTIONS").Name("new-exercise")
	r.HandleFunc("/exercises/{id}", splitsHandler.HandleDeleteExercise).Methods("DELETE", "OPTIONS").Name("delete-exercise")
	r.HandleFunc("/exercises/{id}/done", splitsHandler.HandleExerciseDone).Methods("POST", "OPTIONS").Name("exercise-done")
	r.HandleFunc("/exercises/{id}/sets", splitsHandler.HandleAddSet).Methods("POST", "OPTIONS").Name("new-set")
	r.HandleFunc("/sets/{id}", splitsHandler.HandleUpdateSet).Methods("PUT", "OPTIONS").Name("update-set")
	r.HandleFunc("/sets/{id}", splitsHandler.HandleDeleteSet).Methods("DELETE", "OPTIONS").Name("delete-set")

	historyHandler := history.NewHandler(historyService, s.metricsManager)
	r.HandleFunc("/history", historyHandler.HandleLogWorkout).Methods("POST", "OPTIONS").Name("log-workout")
	r.HandleFunc("/history", historyHandler.HandleListWorkouts).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/history/dates", historyHandler.HandleListDates).Methods("GET", "OPTIONS").Name("workout-dates")
	r.HandleFunc("/history/{id}", historyHandler.HandleGetWorkout).Methods("GET", "OPTIONS").Name("get-workout")
	r.HandleFunc("/history/{id}", historyHandler.HandleDeleteWorkout).Methods("DELETE", "OPTIONS").Name("delete-workout")

	weightsHandler := weights.NewHandler(weightsRepo)
	r.HandleFunc("/weights", weightsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-weight")
	r.HandleFunc("/weights", weightsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-weights")
	r.HandleFunc("/weights/{id}", weightsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-weight")

	statsHandler := stats.NewHandler(statsService)
	r.HandleFunc("/stats/musclegroups", statsHandler.HandleTotals).Methods("GET", "OPTIONS").Name("musclegroup-totals")
	r.HandleFunc("/stats/musclegroups/chart", statsHandler.HandleChart).Methods("GET", "OPTIONS").Name("musclegroup-chart")

	interchangeService := interchange.NewService(splitsRepo, s.config.ExportsRootPath)
	interchangeHandler := interchange.NewHandler(interchangeService, s.metricsManager)
	r.HandleFunc("/splits/import", interchangeHandler.HandleImport).Methods("POST", "OPTIONS").Name("import-split")
	r.HandleFunc("/splits/{id}/export", interchangeHandler.HandleExport).Methods("GET", "OPTIONS").Name("export-split")

	reconciler := syncer.NewReconciler(
		syncer.NewRedisDocumentStore(s.redisClient),
		splitsRepo,
		historyRepo,
		weightsRepo,
		settingsRepo,
	)
	s.syncDebouncer = syncer.NewDebouncer(
		time.Duration(s.config.SyncDebounceSeconds)*time.Second,
		reconciler.FullSync,
	)
	syncHandler := syncer.NewHandler(reconciler, s.syncDebouncer, s.metricsManager)
	r.HandleFunc("/sync/pull", syncHandler.HandlePull).Methods("POST", "OPTIONS").Name("sync-pull")
	r.HandleFunc("/sync/push", syncHandler.HandlePush).Methods("POST", "OPTIONS").Name("sync-push")
	r.HandleFunc("/sync/full", syncHandler.HandleFullSync).Methods("POST", "OPTIONS").Name("sync-full")
	r.HandleFunc("/sync/debounced", syncHandler.HandleDebounced).Methods("POST", "OPTIONS").Name("sync-debounced")
	r.HandleFunc("/sync/enabled", syncHandler.HandleGetEnabled).Methods("GET", "OPTIONS").Name("sync-enabled")
	r.HandleFunc("/sync/enabled", syncHandler.HandleSetEnabled).Methods("PUT", "OPTIONS").Name("sync-set-enabled")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	miscHandler := misc.NewHandler(s.versionInfo, s.authService)
	miscHandler.SetupRoutes(r, reqRateLimiter, s.metricsManager, s.config.LoginRateLimitAllowedPerMin)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(_ context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.syncDebouncer != nil {
		log.Debugln("stopping sync debouncer ...")
		s.syncDebouncer.Stop()
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
