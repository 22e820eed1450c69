package routes

import (
	"log"

	"marketplace/cart"
	"marketplace/config"
	"marketplace/models"
	"marketplace/services"
)

func cartStore() cart.Store {
	if config.RedisClient == nil {
		return nil
	}
	return cart.NewRedisStore(config.RedisClient, config.AppConfig.CartTTL)
}

// BuildCartService wires the Redis-backed cart store. Without Redis the
// service answers every cart operation with an unavailable error.
func BuildCartService() *services.CartService {
	return services.NewCartService(cartStore())
}

func BuildOrderService() *services.OrderService {
	email, err := models.NewEmailService()
	if err != nil {
		log.Printf("Order confirmation emails disabled: %v", err)
	}
	return services.NewOrderService(cartStore(), email)
}

func BuildCloudinary() *models.CloudinaryService {
	cld, err := models.NewCloudinaryService()
	if err != nil {
		log.Printf("Cloudinary disabled, falling back to local uploads: %v", err)
		return nil
	}
	return cld
}
