package main

import (
	"context"
	"log"

	"github.com/vehicleq/vehicleq-go/internal/client/cli"
	"github.com/vehicleq/vehicleq-go/internal/client/config"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)
}
