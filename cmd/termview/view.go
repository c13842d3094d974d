package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pkt.systems/pslog"
	"pkt.systems/termview/internal/appconfig"
	"pkt.systems/termview/internal/logx"
	"pkt.systems/termview/internal/rawmode"
	"pkt.systems/termview/internal/session"
)

func newViewCmd() *cobra.Command {
	var cfgPath string
	var tabStop int
	cmd := &cobra.Command{
		Use:           "termview [file]",
		Short:         "View a text file in the terminal",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("tab-stop") {
				cfg.Viewer.TabStop = tabStop
			}
			opts, err := sessionOptions(cfg, args)
			if err != nil {
				return err
			}

			term := rawmode.New(
				int(os.Stdin.Fd()),
				rawmode.WithSizeFrom(int(os.Stdout.Fd())),
				rawmode.WithReadTimeout(uint8(cfg.Terminal.ReadTimeout)),
			)
			if !term.IsTerminal() {
				return fmt.Errorf("stdin: %w", rawmode.ErrNotTerminal)
			}

			logger, closer, err := logx.Open(cfg.Logging.File, cfg.Logging.Level)
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()
			if opts.Path != "" {
				logger = logger.With("file", opts.Path)
			}
			ctx := logx.ContextWithFileLogger(cmd.Context(), logger, opts.Path)
			pslog.Ctx(cmd.Context()).Debug("termview session start", "file", opts.Path, "log_file", cfg.Logging.File)

			return session.New(term, os.Stdin, os.Stdout, opts).Run(ctx)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	cmd.Flags().IntVar(&tabStop, "tab-stop", 0, "spaces per tab (overrides viewer.tab_stop)")
	return cmd
}

func sessionOptions(cfg appconfig.Config, args []string) (session.Options, error) {
	if err := appconfig.Validate(cfg); err != nil {
		return session.Options{}, err
	}
	opts := session.Options{
		TabStop: cfg.Viewer.TabStop,
		Welcome: cfg.Viewer.Welcome,
	}
	if len(args) > 0 {
		opts.Path = args[0]
	}
	return opts, nil
}
