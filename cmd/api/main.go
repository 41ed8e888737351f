package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-graphql-api/graph"
	"restaurant-graphql-api/internal/app/foods"
	"restaurant-graphql-api/internal/app/restaurants"
	"restaurant-graphql-api/internal/app/reviews"
	"restaurant-graphql-api/internal/app/users"
	"restaurant-graphql-api/internal/auth"
	"restaurant-graphql-api/internal/config"
	"restaurant-graphql-api/internal/logging"
	"restaurant-graphql-api/internal/mongodb"
	httptransport "restaurant-graphql-api/internal/transport/http"

	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/lru"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/vektah/gqlparser/v2/ast"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("configure logging: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := db.Close(closeCtx); err != nil {
			logger.Error("close database", slog.Any("error", err))
		}
	}()

	if err := db.EnsureIndexes(ctx); err != nil {
		return err
	}

	tokens := auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	userService := users.NewService(users.NewMongoRepository(db), tokens, auth.NewPasswordHasher())
	restaurantService := restaurants.NewService(restaurants.NewMongoRepository(db))
	foodService := foods.NewService(foods.NewMongoRepository(db), restaurantService)
	reviewService := reviews.NewService(reviews.NewMongoRepository(db), restaurantService)

	gqlSrv := handler.New(graph.NewExecutableSchema(graph.Config{
		Resolvers: &graph.Resolver{
			Users:       userService,
			Restaurants: restaurantService,
			Foods:       foodService,
			Reviews:     reviewService,
			Guard:       auth.NewGuard(tokens),
			Logger:      logger,
		},
	}))

	gqlSrv.AddTransport(transport.Options{})
	gqlSrv.AddTransport(transport.GET{})
	gqlSrv.AddTransport(transport.POST{})

	gqlSrv.SetQueryCache(lru.New[*ast.QueryDocument](1000))
	gqlSrv.SetErrorPresenter(graph.ErrorPresenter(logger))

	gqlSrv.Use(extension.Introspection{})
	gqlSrv.Use(extension.AutomaticPersistedQuery{
		Cache: lru.New[string](100),
	})

	mux := http.NewServeMux()
	mux.Handle("/", playground.Handler("GraphQL playground", "/query"))
	mux.Handle("/query", gqlSrv)

	accessLog := httptransport.RequestLogger{Logger: logger}
	bearer := httptransport.BearerMiddleware{}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           accessLog.Wrap(bearer.Wrap(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("connect to http://localhost:" + cfg.HTTP.Port + "/ for GraphQL playground")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
