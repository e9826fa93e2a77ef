package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rishiparsad75/pixland-face-service/internal/config"
	"github.com/rishiparsad75/pixland-face-service/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the face service HTTP server",
	Long: `Start the PixLand face service.
The recognition backend is contacted lazily on the first extraction, so the
server starts instantly; the first /extract request pays the model loading
cost.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	host, err := cmd.Flags().GetString("host")
	if err != nil {
		return fmt.Errorf("reading host flag: %w", err)
	}

	// PORT is the single deployment-facing port variable; config.Load
	// already applied the default.
	port := cfg.Server.Port

	server := web.NewServer(cfg, port, host)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting PixLand face service on http://%s:%d\n", host, port)
	fmt.Printf("Model: %s, Detector: %s, Backend: %s\n", cfg.Face.Model, cfg.Face.Detector, cfg.Face.BackendURL)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
