package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"academy/config"
	"academy/database"
	"academy/enrollment"
	authRoutes "academy/routers/authRoutes"
	cartRoutes "academy/routers/cartRoutes"
	classRoutes "academy/routers/classRoutes"
	paymentRoutes "academy/routers/paymentRoutes"
	userRoutes "academy/routers/userRoutes"
	"academy/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadConfig()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	db, err := database.Connect(config.AppConfig)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logrus.Errorf("failed to close database: %v", err)
		}
	}()

	// Redis is optional: without it listings are served straight from the DB
	var rdb *redis.Client
	if config.AppConfig.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPass,
			DB:       config.AppConfig.RedisDB,
		})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	}

	roleDir := database.NewRoleDirectory(db)
	workflow := enrollment.NewWorkflow(db, rdb, logrus.StandardLogger())

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Server is Running...")
	})

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app, db, roleDir)
	classRoutes.SetupClassRoutes(app, db, rdb, roleDir)
	cartRoutes.SetupCartRoutes(app, db)
	paymentRoutes.SetupPaymentRoutes(app, db, workflow)

	sweeper := utils.InitializeCartScheduler(db, config.AppConfig.CartTTLDays)

	// Shut down cleanly so the store handle is always released
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logrus.Info("Shutting down...")
		sweeper.Stop()
		if err := app.Shutdown(); err != nil {
			logrus.Errorf("server shutdown: %v", err)
		}
	}()

	logrus.Infof("Server is running on port %s", config.AppConfig.Port)
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
