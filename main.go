package main

import (
	"log"
	"time"

	"backend/config"
	"backend/middleware"
	"backend/realtime"
	"backend/routes"
	"backend/store"
	"backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	cfg := config.Load()

	gin.SetMode(gin.ReleaseMode)
	log.Printf("Running in %s mode", gin.Mode())

	r := gin.Default()

	middleware.InitMetrics()
	r.Use(middleware.PrometheusMiddleware())
	r.GET("/metrics", func(c *gin.Context) {
		promhttp.Handler().ServeHTTP(c.Writer, c.Request)
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("Failed to load timezone %s: %v", cfg.Timezone, err)
	}

	db := config.ConnectDatabase(cfg)
	st := store.NewMongo(db)

	hub := realtime.NewHub()
	r.GET("/ws", hub.Serve)

	scheduler := gocron.NewScheduler(location)
	scheduler.Every(1).Day().At("01:01").Do(utils.LowStockSweep(st, cfg.SMTPFrom, cfg.AlertEmail))
	scheduler.StartAsync()

	r.Static("/uploads", "./uploads")

	routes.InitializeRoutes(r, st, hub, location, cfg)

	r.Run(":" + cfg.Port)
}
