package main

import (
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"kef/config"
	"kef/database"
	"kef/routes"
	"kef/services"
	"kef/utils"
)

func main() {
	// All timestamps in IST
	istLocation, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		istLocation = time.FixedZone("IST", 5*60*60+30*60)
	}
	time.Local = istLocation

	cfg := config.LoadConfig()

	if err := utils.InitLogger(); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	// PostgreSQL
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	log.Println("Connected to PostgreSQL")

	utils.SetDB(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	log.Println("Migration complete")

	// Redis holds pending registrations and revoked admin tokens
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	utils.SetRedis(rdb)

	gateway := services.NewPhonePe(cfg)
	if gateway.Configured() {
		log.Printf("PhonePe gateway configured (%s)", cfg.PhonePeEnv)
	} else {
		log.Println("PhonePe gateway NOT configured, online payment disabled")
	}

	pending := services.NewRedisPendingStore(rdb)

	// Recovers payments whose callback never arrived
	services.StartReconcileCron(db, gateway, pending)

	r := routes.SetupRouter(db, cfg, gateway, pending, rdb)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
