package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/golanpiyush/adbwifi/internal/adb"
	"github.com/golanpiyush/adbwifi/internal/config"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List connected devices and their state",
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

		devices, err := client.Devices()
		if err != nil {
			return err
		}
		if len(devices) == 0 {
			fmt.Println("No devices connected.")
			return nil
		}

		for _, d := range devices {
			nickname := ""
			if dc, ok := cfg.Devices[d.Serial]; ok && dc.Nickname != "" {
				nickname = fmt.Sprintf(" (%s)", dc.Nickname)
			}
			fmt.Printf("%-24s [%s] [%s]%s\n", d.Serial, d.ConnType, d.State, nickname)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
