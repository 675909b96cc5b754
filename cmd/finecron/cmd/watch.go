package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/spf13/cobra"

	"finecron/internal/registry"
	"finecron/pkg/logx"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the config file and keep its schedules validated",
	Long: `Loads the config file, compiles every schedule, and revalidates on each
change. An update with an invalid schedule is logged and rejected; the
previous set stays active.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	log := newLogger()
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	m := registry.NewManager(flagConfig, log)
	snap, err := m.Load()
	if err != nil {
		return err
	}
	log.Info("schedules loaded",
		logx.String("path", flagConfig), logx.Int("count", snap.Len()))

	// Tell systemd we are up when running under a unit; no-op otherwise.
	_, _ = daemon.SdNotify(false, daemon.SdNotifyReady)
	defer func() { _, _ = daemon.SdNotify(false, daemon.SdNotifyStopping) }()

	if err := m.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("watch stopped")
	return nil
}
