package main

import (
	"github.com/SundayYogurt/inventory_service/config"
	"github.com/SundayYogurt/inventory_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
