package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/golanpiyush/adbwifi/internal/adb"
	"github.com/golanpiyush/adbwifi/internal/config"
	"github.com/golanpiyush/adbwifi/internal/history"
	"github.com/golanpiyush/adbwifi/internal/logging"
	"github.com/golanpiyush/adbwifi/internal/wireless"
)

// consoleReporter prints progress lines with the classic bracketed
// prefixes.
type consoleReporter struct{}

func (consoleReporter) Stepf(format string, args ...any) {
	fmt.Printf("[*] "+format+"\n", args...)
}

func (consoleReporter) Successf(format string, args ...any) {
	fmt.Printf("[+] "+format+"\n", args...)
}

func (consoleReporter) Failuref(format string, args ...any) {
	fmt.Printf("[-] "+format+"\n", args...)
}

func (consoleReporter) Hintf(format string, args ...any) {
	fmt.Printf("[!] "+format+"\n", args...)
}

func runConnect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = flagPort
	}
	if cmd.Flags().Changed("retries") {
		cfg.Retries = flagRetries
	}
	if cmd.Flags().Changed("retry-delay-seconds") {
		cfg.RetryDelaySeconds = flagRetryDelay
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	initLogging(cfg)

	orch := wireless.New(wireless.Options{
		Port:       cfg.Port,
		Retries:    cfg.Retries,
		RetryDelay: time.Duration(cfg.RetryDelaySeconds * float64(time.Second)),
		Serial:     flagDevice,
	})
	orch.Reporter = consoleReporter{}
	orch.NewBridge = func(path string) wireless.Bridge {
		return newClient(path, cfg)
	}

	db, err := history.Open(config.ConfigDir())
	if err != nil {
		logging.Get().WithError(err).Warn("connection history unavailable")
		db = nil
	} else {
		defer db.Close()
	}
	orch.Store = &ipStore{cfg: cfg, db: db}

	out := orch.Run()
	if db != nil {
		recordOutcome(db, out)
	}
	if out.State != wireless.StateDone {
		return &workflowError{code: out.ExitCode()}
	}
	return nil
}

// ipStore resolves fallback addresses: an IP pinned in the config wins,
// then the last IP the history database saw for the serial.
type ipStore struct {
	cfg *config.Config
	db  *history.DB
}

func (s *ipStore) LastIP(serial string) (string, bool, error) {
	if dc, ok := s.cfg.Devices[serial]; ok && dc.WiFiIP != "" {
		return dc.WiFiIP, true, nil
	}
	if s.db == nil {
		return "", false, nil
	}
	return s.db.LastIP(serial)
}

func (s *ipStore) RememberIP(serial, ip string) error {
	if s.db == nil {
		return nil
	}
	return s.db.RememberIP(serial, ip)
}

func newClient(path string, cfg *config.Config) *adb.Client {
	client := adb.NewClient(path, adb.NewExecRunner())
	client.Timeout = time.Duration(cfg.CommandTimeoutSeconds * float64(time.Second))
	client.ConnectTimeout = time.Duration(cfg.ConnectTimeoutSeconds * float64(time.Second))
	client.InterfacePreference = cfg.InterfacePreference
	return client
}

func initLogging(cfg *config.Config) {
	level := cfg.LogLevel
	if flagVerbose {
		level = "debug"
	}
	logging.Init(level)
}

func recordOutcome(db *history.DB, out wireless.Outcome) {
	a := history.Attempt{
		Serial: out.Serial,
		State:  "done",
		Reason: out.Reason,
	}
	if out.State != wireless.StateDone {
		a.State = "failed"
	}
	if out.Target != nil {
		a.IP = out.Target.IP
		a.Port = out.Target.Port
	}
	if err := db.RecordAttempt(a); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record attempt: %v\n", err)
	}
}
