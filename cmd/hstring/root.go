package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/AdrianWangs/go-hstring/config"
	"github.com/AdrianWangs/go-hstring/pkg/hstring"
	"github.com/AdrianWangs/go-hstring/pkg/logger"
)

// app carries what every subcommand needs
type app struct {
	in  io.Reader
	out io.Writer
	cfg *config.Config
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out, cfg: config.DefaultConfig()}

	rootCmd := &cobra.Command{
		Use:           "hstring",
		Short:         "Word tools built on hybrid inline/heap strings",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().String("config", "", "config file (.json, .yaml or .toml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json (overrides config)")

	rootCmd.AddCommand(
		a.wordsCmd(),
		a.freqCmd(),
		a.randomCmd(),
		a.joinCmd(),
		a.trimCmd(),
		a.lowerCmd(),
		a.configCmd(),
		a.serveCmd(),
	)
	return rootCmd
}

// setup loads configuration, then applies flag overrides and the logger settings
func (a *app) setup(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		cfg, err := config.LoadFromFile(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		a.cfg = cfg
	} else {
		a.cfg = config.LoadFromEnv()
		if err := a.cfg.Validate(); err != nil {
			return fmt.Errorf("invalid environment config: %w", err)
		}
	}

	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		a.cfg.LogLevel = lvl
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		a.cfg.LogFormat = format
	}
	if err := logger.Configure(a.cfg.LogLevel, a.cfg.LogFormat); err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}
	logger.Debugf("config loaded: %+v", *a.cfg)
	return nil
}

// eachLine calls fn for every input line
func (a *app) eachLine(fn func(line *hstring.String) error) error {
	br := bufio.NewReader(a.in)
	var line hstring.String
	for {
		err := line.ReadLine(br)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if err := fn(&line); err != nil {
			return err
		}
	}
}

// readAll gathers the whole input into one string, lines separated by '\n'
func (a *app) readAll() (hstring.String, error) {
	var text hstring.String
	err := a.eachLine(func(line *hstring.String) error {
		text.AppendString(line)
		text.Append('\n')
		return nil
	})
	return text, err
}

// writeLine writes s followed by a newline
func writeLine(w *bufio.Writer, s *hstring.String) error {
	if _, err := s.WriteTo(w); err != nil {
		return err
	}
	return w.WriteByte('\n')
}
