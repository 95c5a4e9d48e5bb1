package main

import (
	"log"
	"os"

	"github.com/UlyssesVaz/SoundCreditUnion/config"
	"github.com/UlyssesVaz/SoundCreditUnion/routes"

	"github.com/shopspring/decimal"
)

func main() {
	// money fields serialize as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true

	config.InitDB()
	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Sound CU Co-Pilot API listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
