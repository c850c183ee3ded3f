package main

import (
	"log"

	"coffee-chronicles/cmd/config"
	"coffee-chronicles/internal/utils"
)

func main() {
	utils.LoadConfig()

	ddb, s3Client, err := config.ConnectAWS()
	if err != nil {
		log.Fatalf("failed to connect to AWS: %v", err)
	}

	app, err := config.NewApp(ddb, s3Client)
	if err != nil {
		log.Fatalf("failed to build app: %v", err)
	}

	port := utils.GetConfig("APP_PORT")
	if port == "" {
		port = "8080"
	}

	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
