package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/golanpiyush/adbwifi/internal/adb"
	"github.com/golanpiyush/adbwifi/internal/config"
)

var disconnectCmd = &cobra.Command{
	Use:   "disconnect [ip:port]",
	Short: "Drop wireless connections (all of them without an argument)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		initLogging(cfg)

		path, err := adb.Locate()
		if err != nil {
			return fmt.Errorf("locate adb: %w (try: %s)", err, adb.InstallHint())
		}
		client := newClient(path, cfg)

		if len(args) == 1 {
			if err := client.Disconnect(args[0]); err != nil {
				return err
			}
			fmt.Printf("Disconnected %s\n", args[0])
			return nil
		}

		devices, err := client.Devices()
		if err != nil {
			return err
		}
		count := 0
		for _, d := range devices {
			if !d.Wireless() {
				continue
			}
			if err := client.Disconnect(d.Serial); err != nil {
				fmt.Printf("Failed to disconnect %s: %v\n", d.Serial, err)
				continue
			}
			fmt.Printf("Disconnected %s\n", d.Serial)
			count++
		}
		if count == 0 {
			fmt.Println("No wireless connections to disconnect.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(disconnectCmd)
}
