package main

import (
	"time"

	"postboard/config"
	"postboard/routes"
	"postboard/storage"
	"postboard/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	// Shared clients, built once and reused for the process lifetime
	dynamoClient, presignClient := config.InitAWS()
	store := storage.NewDynamoStore(dynamoClient, cfg.DynamoTable)
	signer := storage.NewS3Signer(presignClient, cfg.S3Bucket, time.Duration(cfg.SignedURLTTLMinutes)*time.Minute)

	r := routes.SetupRouter(store, signer)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
