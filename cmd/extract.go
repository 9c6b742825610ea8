package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/asknote/asknote-be/service"
	"github.com/asknote/asknote-be/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// extractCmd runs the extraction pipeline against a local file without
// starting the server, useful for checking what a document will yield.
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract text from a PDF file",
	Long:  `Runs the PDF extraction pipeline on a local file and prints per-page statistics.`,
	Run: func(cmd *cobra.Command, args []string) {
		filePath, _ := cmd.Flags().GetString("file")
		if filePath == "" {
			log.Fatal("--file is required")
		}

		zapLogger, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer zapLogger.Sync()

		data, err := os.ReadFile(filePath)
		if err != nil {
			log.Fatalf("Failed to read file: %v", err)
		}

		pdfService := service.NewPDFService(store.NewMemoryCache(), zapLogger.Sugar())
		result, err := pdfService.Extract(context.Background(), data)
		if err != nil {
			log.Fatalf("Extraction failed: %v", err)
		}

		fmt.Printf("Extracted %d characters across %d pages\n", len(result.FullText), len(result.Pages))
		for _, page := range result.Pages {
			fmt.Printf("  page %d: %d characters\n", page.PageNum, len(page.Text))
		}
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("file", "f", "", "Path to the PDF file to extract")
}
