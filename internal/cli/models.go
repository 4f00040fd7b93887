package cli

import (
	"context"
	"fmt"
	"time"

	"HealthAssistant/pkg/gemini"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List Gemini models that support text generation",
	Args:  cobra.NoArgs,
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	client, err := gemini.NewGeminiClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	models, err := client.ListTextModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	if len(models) == 0 {
		cmd.Println("No models support generateContent for this key.")
		return nil
	}

	cmd.Println("Models supporting generateContent:")
	for _, name := range models {
		cmd.Printf("  %s\n", name)
	}
	return nil
}
