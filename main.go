package main

import (
	"fmt"
	"os"

	"github.com/IgorHWebDev/healthcare-sim/cmd"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present so API keys can live next to the binary.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
