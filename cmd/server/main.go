package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"garantias-service/internal/config"
	"garantias-service/internal/controller"
	"garantias-service/internal/middleware"
	"garantias-service/internal/rabbit"
	"garantias-service/internal/repository"
	"garantias-service/internal/service"
	"garantias-service/internal/zoho"
	"garantias-service/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)

	// Conexión a MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("error conectando a MongoDB")
	}
	db := client.Database(cfg.MongoDBName)

	// Repositorios y servicios
	solRepo := repository.NewMongoSolicitudRepository(db)
	catRepo := repository.NewMongoCatalogoRepository(db)
	zohoClient := zoho.NewClient(cfg.ZohoURL, log)
	solicitudService := service.NewSolicitudService(solRepo, zohoClient, log)
	authService := service.NewAuthService(cfg.AuthURL)

	// Handlers
	solCtl := controller.NewSolicitudController(solicitudService)
	catCtl := controller.NewCatalogoController(catRepo)

	// Router
	r := gin.Default()
	controller.RegisterRoutes(r, solCtl, catCtl, middleware.AuthMiddleware(authService))

	// Conexión a RabbitMQ
	conn, err := amqp091.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatal().Err(err).Msg("error conectando a RabbitMQ")
	}
	ch, err := conn.Channel()
	if err != nil {
		log.Fatal().Err(err).Msg("error creando canal en RabbitMQ")
	}

	rabbit.SetupConsumers(ch, solicitudService, log)

	// Ejecutar servidor
	log.Info().Str("port", cfg.Port).Msg("servicio de garantías ejecutándose")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Send()
	}
}
