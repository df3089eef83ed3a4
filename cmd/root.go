package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version of adbwifi.
const Version = "1.0.0"

var (
	flagPort       int
	flagRetries    int
	flagRetryDelay float64
	flagDevice     string
	flagVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:     "adbwifi",
	Short:   "Switch an Android device from USB to wireless debugging",
	Version: Version,
	Long: `adbwifi drives the adb binary to move a USB-attached Android device
onto wireless debugging: it finds adb, picks an authorized device, resolves
the device's WiFi address, switches adbd into TCP/IP mode, connects, and
verifies the result.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConnect,
}

func init() {
	rootCmd.Flags().IntVar(&flagPort, "port", 0, "TCP port for wireless debugging (default from config, 5555)")
	rootCmd.Flags().IntVar(&flagRetries, "retries", 0, "max attempts per retryable step (default from config, 3)")
	rootCmd.Flags().Float64Var(&flagRetryDelay, "retry-delay-seconds", 0, "delay between attempts (default from config, 2.0)")
	rootCmd.Flags().StringVar(&flagDevice, "device", "", "serial of the device to use (default: first authorized device)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// workflowError carries the terminal exit code of a failed workflow run.
// The reporter has already printed the failure; Execute only maps the code.
type workflowError struct {
	code int
}

func (e *workflowError) Error() string {
	return fmt.Sprintf("workflow failed (exit %d)", e.code)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var we *workflowError
		if errors.As(err, &we) {
			os.Exit(we.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
