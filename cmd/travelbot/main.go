package main

import (
	"log"

	corecmd "github.com/m3rciful/travelbot/core/cmd"
	"github.com/m3rciful/travelbot/internal/app"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		ConfigEnvVar:      "TRAVELBOT_CONFIG",
		DefaultConfigPath: "config.yaml",
		Bootstrap:         app.Bootstrap,
	})
	if err != nil {
		log.Fatalf("travelbot: %v", err)
	}
}
