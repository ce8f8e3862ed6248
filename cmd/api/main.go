package main

import (
	"context"
	"log"

	"github.com/Apurer/go-gin-greeter-api/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("greeter API failed: %v", err)
	}
}
