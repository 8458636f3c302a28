package main

import (
	"fmt"
	"strings"

	"edu-messenger/app"
	"edu-messenger/auth"

	"github.com/spf13/cobra"
)

// askCmd asks the architecture mentor from the terminal
var askCmd = &cobra.Command{
	Use:   "ask <topic...>",
	Short: "Ask the architecture mentor about a topic",
	Long: `Send a topic to the configured advisor provider and print the answer.

Example:
  edu-messenger ask "Realtime WebSocket connections"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

// registerCmd creates a local account
var registerCmd = &cobra.Command{
	Use:   "register <identifier> <secret>",
	Short: "Create a local account",
	Args:  cobra.ExactArgs(2),
	RunE:  runRegister,
}

// usersCmd lists local accounts
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List local accounts",
	Args:  cobra.NoArgs,
	RunE:  runUsers,
}

func runAsk(cmd *cobra.Command, args []string) error {
	r, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer r.close()

	topic := strings.Join(args, " ")
	result := r.controller.Ask(cmd.Context(), topic)
	fmt.Fprintln(cmd.OutOrStdout(), result.Text)
	if result.Failed {
		return fmt.Errorf("advisor request for %q failed", topic)
	}
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	r, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer r.close()

	record, err := r.controller.Register(args[0], args[1])
	if err != nil {
		return fmt.Errorf("%s", app.UserMessage(err))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s)\n", record.Identifier, record.ID)
	return nil
}

func runUsers(cmd *cobra.Command, args []string) error {
	r, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer r.close()

	records, err := r.store.Records()
	if err != nil {
		return fmt.Errorf("failed to read accounts: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No accounts registered")
		return nil
	}
	for _, rec := range records {
		fmt.Fprintf(out, "%s\t%s\t%s\n", rec.Identifier, rec.ID, rec.CreatedAt.Format("2006-01-02 15:04"))
	}

	entry, err := r.database.GetEntry(auth.UsersKey)
	if err != nil {
		return fmt.Errorf("failed to read account list metadata: %w", err)
	}
	fmt.Fprintf(out, "%d account(s), last change %s\n", len(records), entry.UpdatedAt.Local().Format("2006-01-02 15:04"))
	return nil
}
