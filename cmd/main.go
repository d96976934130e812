// FilePath: cmd/main.go
package main

import (
	"fmt"
	"log"
	"os"

	tm "github.com/buger/goterm"
	nuts "github.com/vaudience/go-nuts"

	"github.com/Nakib00/IoT-project-Server/internal/config"
	"github.com/Nakib00/IoT-project-Server/internal/server"
)

func main() {
	// Clear console and draw logo
	ClearConsole()
	DrawLogo()
	// Initialize version info
	nuts.InitVersion()
	nuts.L.Infof("[Main] Starting IoT Project Server v%s", nuts.GetVersion())

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create and start server
	srv, err := server.New(cfg)
	if err != nil {
		nuts.L.Errorf("[Main] Failed to initialize server: %v", err)
		os.Exit(1)
	}
	if err := srv.Start(); err != nil {
		nuts.L.Errorf("[Main] Server error: %v", err)
		os.Exit(1)
	}
}

// ClearConsole clears the console screen and draws the logo.
func ClearConsole() {
	tm.Clear()
	tm.MoveCursor(1, 1)
	tm.Flush()
}

func DrawLogo() {
	fmt.Println()
	lines := []string{
		"    ____    ______   _____",
		"   /  _/___/_  __/  / ___/___  ______   _____  _____",
		"   / // __ \\/ /     \\__ \\/ _ \\/ ___/ | / / _ \\/ ___/",
		" _/ // /_/ / /     ___/ /  __/ /   | |/ /  __/ /",
		"/___/\\____/_/     /____/\\___/_/    |___/\\___/_/",
		"..........................................  " + nuts.GetVersion(),
	}

	for _, line := range lines {
		fmt.Println(line)
	}
}
