package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/golanpiyush/adbwifi/internal/config"
	"github.com/golanpiyush/adbwifi/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent connection attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := history.Open(config.ConfigDir())
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer db.Close()

		attempts, err := db.RecentAttempts(historyLimit)
		if err != nil {
			return err
		}
		if len(attempts) == 0 {
			fmt.Println("No connection attempts recorded.")
			return nil
		}
		for _, a := range attempts {
			target := "-"
			if a.IP != "" {
				target = fmt.Sprintf("%s:%d", a.IP, a.Port)
			}
			line := fmt.Sprintf("%s  %-6s %-22s %s",
				a.CreatedAt.Format("2006-01-02 15:04:05"), a.State, target, a.Serial)
			if a.Reason != "" {
				line += fmt.Sprintf("  (%s)", a.Reason)
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of attempts to show")
	rootCmd.AddCommand(historyCmd)
}
