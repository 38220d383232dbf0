package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/guessgame/internal/factory"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guessgame",
		Short: "Guess the number between 1 and 100",
		Long: `guessgame picks a secret number from 1 to 100 and asks you to guess it.

Lifetime statistics are kept per player name in a ledger file in the
working directory. Quitting a game part way through does not save it.

Environment:
  GUESSGAME_STORAGE      ledger backend: file, memory, redis, sqlite (default file)
  GUESSGAME_STORE_PATH   ledger file (default players.txt)
  GUESSGAME_SQLITE_PATH  sqlite database (default players.db)
  REDIS_URL              redis connection URL for the redis backend
  GUESSGAME_LOG_LEVEL    debug, info, warn, error (default warn)
  GUESSGAME_SEED         non-zero value replays the same secret numbers`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}

			level, err := cfg.Level()
			if err != nil {
				return err
			}

			// stdout belongs to the game, logs go to stderr
			logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))

			fc, err := cfg.FactoryConfig(logger)
			if err != nil {
				return err
			}

			app, err := factory.New(fc)
			if err != nil {
				return err
			}
			defer app.Close()

			console := NewConsole(cmd.InOrStdin(), cmd.OutOrStdout())
			result, err := app.GameController.Play(cmd.Context(), console, NewOutput())
			if err != nil {
				logger.Error("game aborted", slog.String("error", err.Error()))
				return err
			}

			logger.Info("game finished",
				slog.String("outcome", string(result.Outcome)),
				slog.String("session_id", result.SessionID),
			)
			return nil
		},
	}
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
