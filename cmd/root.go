package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pixland-face-service",
	Short: "Face recognition microservice for PixLand",
	Long: `PixLand Face Service extracts face embeddings from images and compares
embeddings to decide whether two faces belong to the same person.
Recognition runs on a DeepFace-style backend; this service owns the HTTP
contract, decoding, and the match decision policy.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
