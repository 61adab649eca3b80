package main

import (
	"github.com/joho/godotenv"

	"github.com/nexus-ia/notion-automation/internal/cli"
)

func main() {
	// A missing .env is fine, the environment may carry the credentials.
	_ = godotenv.Load()

	cli.Execute()
}
