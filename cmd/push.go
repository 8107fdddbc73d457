package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRunPush bool
	yesConfirm bool
)

// pushCmd uploads an offline game to the remote authority.
var pushCmd = &cobra.Command{
	Use:   "push <game-id>",
	Short: "Upload an offline game",
	Long: `Uploads a game recorded offline in one request and removes it from the local
store once the remote authority accepts it.

Examples:
  # Show what would be uploaded
  push 64f1c0 --dry-run

  # Upload with auto-confirm (non-interactive)
  push 64f1c0 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runPush,
}

func init() {
	pushCmd.Flags().BoolVar(&dryRunPush, "dry-run", false, "Report the payload without uploading")
	pushCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm the upload (non-interactive)")
	RootCmd.AddCommand(pushCmd)
}

func runPush(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	rt, err := newEnv(ctx)
	if err != nil {
		return err
	}
	l := rt.logger
	defer l.Sync()

	gameID := args[0]
	plan, err := rt.coordinator.PlanPush(ctx, gameID)
	if err != nil {
		return err
	}
	l.Info("Push plan",
		zap.String("game", plan.GameID),
		zap.Int("points", plan.Points),
		zap.Int("actions", plan.Actions))

	if dryRunPush {
		l.Info("Dry-run mode: nothing was uploaded.")
		return nil
	}

	if !confirmPush() {
		l.Warn("Push cancelled by user. No changes were made.")
		return nil
	}

	result, err := rt.coordinator.PushOfflineGame(ctx, gameID)
	if err != nil {
		return err
	}
	l.Info("Game pushed and removed from local store",
		zap.String("game", result.GameID),
		zap.String("archive", result.Archive))
	return nil
}

// confirmPush prompts the user for confirmation or uses --yes flag.
func confirmPush() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  The local copy is deleted after upload. Type 'yes' to confirm: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
