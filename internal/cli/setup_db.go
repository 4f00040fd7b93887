package cli

import (
	"fmt"

	"HealthAssistant/database"
	"HealthAssistant/internal/api/faq"
	faqRepository "HealthAssistant/internal/api/faq/repository"
	faqService "HealthAssistant/internal/api/faq/service"
	"HealthAssistant/pkg/log"
	"github.com/spf13/cobra"
)

var setupDBCmd = &cobra.Command{
	Use:   "setup-db",
	Short: "Drop the faqs table and reseed it with the sample FAQs",
	Args:  cobra.NoArgs,
	RunE:  runSetupDB,
}

func init() {
	rootCmd.AddCommand(setupDBCmd)
}

func runSetupDB(cmd *cobra.Command, _ []string) error {
	db, err := database.New()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	logger := log.NewLogger()
	svc := faqService.NewFAQService(logger, faqRepository.New(db, logger), faq.SampleFAQs)
	if err := svc.Reset(cmd.Context()); err != nil {
		return fmt.Errorf("failed to reset faq table: %w", err)
	}

	cmd.Printf("FAQ table recreated with %d entries.\n", len(faq.SampleFAQs))
	return nil
}
