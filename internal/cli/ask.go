package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"HealthAssistant/database"
	"HealthAssistant/internal/api/faq"
	chatService "HealthAssistant/internal/api/chat/service"
	faqRepository "HealthAssistant/internal/api/faq/repository"
	faqService "HealthAssistant/internal/api/faq/service"
	"HealthAssistant/internal/config"
	"HealthAssistant/internal/entity"
	"HealthAssistant/internal/scope"
	"HealthAssistant/pkg/intent"
	"HealthAssistant/pkg/log"
	"HealthAssistant/pkg/responder"
	"github.com/spf13/cobra"
)

const terminalScopeID = "terminal"

var askMessage string

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Chat with the assistant in the terminal",
	Long: `Starts a conversation with its own in-memory history. Type /clear to
reset the history and /exit to quit. With --message a single question is
answered and the command exits.`,
	Args: cobra.NoArgs,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askMessage, "message", "m", "", "answer one message and exit")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := log.NewLogger()

	db, err := database.New()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	faqs := faqService.NewFAQService(logger, faqRepository.New(db, logger), faq.SampleFAQs)
	if err := faqs.Bootstrap(ctx); err != nil {
		return fmt.Errorf("failed to prepare faq table: %w", err)
	}

	table, err := intent.LoadTableOrDefault(os.Getenv("INTENT_KEYWORDS_FILE"))
	if err != nil {
		return err
	}
	classifier, err := intent.NewClassifier(table)
	if err != nil {
		return err
	}

	initGen, err := config.NewGenerativeInitializer()
	if err != nil {
		return err
	}
	r := responder.New(logger, config.GenerativeTimeout(), initGen)
	defer r.Close()

	cmd.Println("Loading the AI model...")
	if err := r.Init(ctx); err != nil {
		cmd.Printf("Generative model unavailable (%v); only FAQ answers will work.\n", err)
	}

	svc := chatService.NewChatService(
		logger,
		scope.NewManager(scope.NewMemoryStore(1, 0)),
		classifier,
		faqs,
		r,
	)

	if askMessage != "" {
		reply, err := svc.SendMessage(ctx, terminalScopeID, askMessage)
		if err != nil {
			return err
		}
		cmd.Println(reply.Message)
		return nil
	}

	return runConversation(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), svc, terminalScopeID)
}

// runConversation reads one message per line until EOF or /exit.
func runConversation(ctx context.Context, in io.Reader, out io.Writer, svc chatService.IChatService, scopeID string) error {
	fmt.Fprintln(out, "Health Assistant. Ask a health question, /clear to reset, /exit to quit.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/exit", "/quit":
			return nil
		case "/clear":
			if err := svc.ClearHistory(ctx, scopeID); err != nil {
				return err
			}
			fmt.Fprintln(out, "History cleared.")
			continue
		case "/history":
			h, err := svc.GetHistory(ctx, scopeID)
			if err != nil {
				return err
			}
			printHistory(out, h)
			continue
		}

		reply, err := svc.SendMessage(ctx, scopeID, line)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %s\n", entity.SenderBot, reply.Message)
	}
}

func printHistory(out io.Writer, h entity.History) {
	if h.Len() == 0 {
		fmt.Fprintln(out, "No messages yet.")
		return
	}
	for _, t := range h {
		fmt.Fprintf(out, "%s: %s\n", t.Sender, t.Message)
	}
}
