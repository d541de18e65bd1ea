package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goalwing/goalwing/internal/server"
)

var servePort int

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the JSON HTTP API over the goal store, for a web frontend or
scripting. The server exposes goal creation, listing, per-day task toggling
and progress queries under /api/goals.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "API server port (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	goalStore, err := GetStore()
	if err != nil {
		return fmt.Errorf("failed to open the goal store: %w", err)
	}
	defer func() { _ = goalStore.Close() }()

	creator, err := newCreator(goalStore)
	if err != nil {
		return fmt.Errorf("failed to configure plan generation: %w", err)
	}

	port := servePort
	if port == 0 {
		port = GetConfig().Server.Port
	}

	var wg sync.WaitGroup
	errChan := make(chan error, 1)

	srv := server.New(port, goalStore, creator)
	srv.Start(&wg, errChan)

	fmt.Printf("GoalWing API listening on http://localhost:%d\n", port)
	fmt.Println("Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		fmt.Printf("\nReceived %v, shutting down...\n", sig)
	case err := <-errChan:
		fmt.Printf("\nServer error: %v\n", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("Server shutdown error: %v\n", err)
	}

	wg.Wait()
	return nil
}
