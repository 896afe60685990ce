package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/app"
)

func main() {
	_ = godotenv.Load()
	if err := app.BuildRoot().Execute(); err != nil {
		os.Exit(1)
	}
}
