package handlers

import (
	config "bluepriori-dashboard/config"
	utils "bluepriori-dashboard/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// ConfigHandler exposes the running configuration
type ConfigHandler struct {
	log    *utils.Logger
	config *config.Config
}

func NewConfigHandler(config *config.Config, logger *utils.Logger) *ConfigHandler {

	return &ConfigHandler{
		config: config,
		log:    logger,
	}
}

// GetConfig returns the configuration with secrets redacted
func (h *ConfigHandler) GetConfig(c *fiber.Ctx) error {
	public := *h.config
	if public.Cache.Redis.Password != "" {
		public.Cache.Redis.Password = "********"
	}
	return c.JSON(public)
}
