package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// A .env alongside the binary can hold PLEX_TOKEN and friends.
	_ = godotenv.Load()

	os.Exit(Execute())
}
