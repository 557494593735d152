package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/BloggingApp/blog-service/internal/config"
	"github.com/BloggingApp/blog-service/internal/handler"
	"github.com/BloggingApp/blog-service/internal/identity"
	"github.com/BloggingApp/blog-service/internal/rabbitmq"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/server"
	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/BloggingApp/blog-service/internal/upload"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const SHUTDOWN_TIMEOUT = 10 * time.Second

var storageDrivers = []string{STORAGE_POSTGRES, STORAGE_MONGODB, STORAGE_MEMORY}

var storageFlag = &cli.StringFlag{
	Name:    "storage",
	Aliases: []string{"s"},
	Usage:   "Storage backend: postgres, mongodb or memory",
	Value:   STORAGE_POSTGRES,
	Validator: func(value string) error {
		if !slices.Contains(storageDrivers, value) {
			return fmt.Errorf("invalid storage driver: %s, allowed values are: %s", value, storageDrivers)
		}
		return nil
	},
	Sources: cli.EnvVars("STORAGE_DRIVER"),
}

var migrateFlag = &cli.BoolFlag{
	Name:    "migrate",
	Usage:   "Create the schema before serving",
	Value:   true,
	Sources: cli.EnvVars("AUTO_MIGRATE"),
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := loadEnv(); err != nil {
		logger.Sugar().Warnf("failed to load .env file: %s", err.Error())
	}

	if err := initConfig(); err != nil {
		logger.Sugar().Panicf("failed to initialize yaml config: %s", err.Error())
	}

	cmd := &cli.Command{
		Name:  "blog-service",
		Usage: "Blogging platform backend",
		Flags: []cli.Flag{storageFlag},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the HTTP API",
				Flags: []cli.Flag{migrateFlag},
				Action: func(ctx context.Context, c *cli.Command) error {
					return serve(ctx, logger, c.String(storageFlag.Name), c.Bool(migrateFlag.Name))
				},
			},
			{
				Name:  "migrate",
				Usage: "Create tables and indexes, then exit",
				Action: func(ctx context.Context, c *cli.Command) error {
					store, err := openStore(ctx, logger, c.String(storageFlag.Name))
					if err != nil {
						return err
					}
					defer store.close()

					if err := store.migrate(ctx); err != nil {
						return err
					}
					logger.Info("Schema is up to date")
					return nil
				},
			},
		},
		DefaultCommand: "serve",
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Sugar().Fatalf("blog-service failed: %s", err.Error())
	}
}

func serve(ctx context.Context, logger *zap.Logger, driver string, migrate bool) error {
	accessSecret := os.Getenv("ACCESS_SECRET")
	if accessSecret == "" {
		return errors.New("ACCESS_SECRET must be set")
	}

	store, err := openStore(ctx, logger, driver)
	if err != nil {
		return err
	}
	defer store.close()

	if migrate {
		if err := store.migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", driver, err)
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	defer rdb.Close()
	pong, err := rdb.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	logger.Sugar().Infof("Successfully connected to Redis: %s", pong)

	var publisher rabbitmq.Publisher = rabbitmq.Discard{}
	if connString := os.Getenv("RABBITMQ_CONN_STRING"); connString != "" {
		mq, err := rabbitmq.New(connString)
		if err != nil {
			return fmt.Errorf("failed to connect to rabbitmq: %w", err)
		}
		defer mq.Close()
		publisher = mq
		logger.Info("Successfully connected to RabbitMQ")
	} else {
		logger.Warn("RABBITMQ_CONN_STRING is not set, notification events are not published")
	}

	google := identity.NewGoogleVerifier(viper.GetString("google.endpoint"), os.Getenv("GOOGLE_CLIENT_ID"))
	defer google.Close()

	opts := service.Options{
		Auth: config.AuthConfig{
			AccessSecret:   []byte(accessSecret),
			AccessTTL:      viper.GetDuration("auth.access_ttl"),
			GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
			GoogleEndpoint: viper.GetString("google.endpoint"),
		},
		Google: google,
	}
	if bucket := os.Getenv("AWS_BUCKET_NAME"); bucket != "" {
		opts.Presigner = upload.NewS3Presigner(config.S3Config{
			Region:    viper.GetString("s3.region"),
			Bucket:    bucket,
			AccessKey: os.Getenv("AWS_ACCESS_KEY"),
			SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			Endpoint:  viper.GetString("s3.endpoint"),
		})
	} else {
		logger.Warn("AWS_BUCKET_NAME is not set, upload urls are disabled")
	}

	repos := repository.New(store.Store, rdb)
	services := service.New(logger, repos, publisher, opts)
	handlers := handler.New(services)

	srv := server.New(config.ServerConfig{
		Port:           viper.GetString("app.port"),
		Handler:        handlers.InitRoutes(),
		MaxHeaderBytes: 1 << 20,
		ReadTimeout:    time.Second * 10,
		WriteTimeout:   time.Second * 10,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	logger.Sugar().Infof("Server started on port %s", viper.GetString("app.port"))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to run http server: %w", err)
		}
		return nil
	case <-quit:
	}

	logger.Info("Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return <-errCh
}

func loadEnv() error {
	return godotenv.Load()
}

func initConfig() error {
	viper.AddConfigPath(".")
	viper.AddConfigPath("configs")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	viper.SetDefault("app.port", "3000")
	viper.SetDefault("auth.access_ttl", "0s")
	return viper.ReadInConfig()
}
