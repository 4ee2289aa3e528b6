// Command chat is the terminal client for MOVIE BOT. It runs the chat domain
// in-process and streams replies as they are generated.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"movie-bot/config"
	"movie-bot/internal/bootstrap"
	"movie-bot/pkg/log"
)

var (
	noStream bool
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with MOVIE BOT in the terminal",
	Long: `Name an actor and MOVIE BOT lists their movies from TMDb, asks what you are
in the mood for and lets the chat model recommend something.

Requires OPENAI_API_KEY and TMDB_API_KEY (or a config.yaml in ./config).`,
	SilenceUsage: true,
	RunE:         runChat,
}

func init() {
	rootCmd.Flags().BoolVar(&noStream, "no-stream", false, "wait for the full reply instead of streaming it")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "write logs to stderr at this level (logs are off by default)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.NewNop()
	if logLevel != "" {
		logger = log.Init(log.ZapConfig{
			Level:    logLevel,
			Mode:     cfg.Logger.Mode,
			Encoding: log.EncodingConsole,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	uc, err := bootstrap.NewChatUseCase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	sess, err := uc.StartSession(ctx)
	if err != nil {
		return err
	}
	defer uc.EndSession(context.Background(), sess.ID)

	m := newChatModel(ctx, uc, sess.ID, !noStream)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
