package main

import (
	"fmt"
	"os"

	"github.com/gnzdotmx/ytpappend/cmd"

	"github.com/joho/godotenv"
)

func main() {
	// A .env file is optional; real environment variables take precedence.
	envLoaded := godotenv.Load() == nil

	if err := cmd.Execute(envLoaded); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
