package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AdrianWangs/go-hstring/internal/analyzer"
	"github.com/AdrianWangs/go-hstring/internal/server"
	"github.com/AdrianWangs/go-hstring/pkg/hstring"
	"github.com/AdrianWangs/go-hstring/pkg/logger"
)

func (a *app) wordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words",
		Short: "Print the distinct lowercase words of stdin, in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readAll()
			if err != nil {
				return err
			}
			w := bufio.NewWriter(a.out)
			for word := range text.UniqueWords().All() {
				if err := writeLine(w, &word); err != nil {
					return err
				}
			}
			return w.Flush()
		},
	}
}

func (a *app) freqCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "freq",
		Short: "Print word frequencies of stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			top, _ := cmd.Flags().GetInt("top")
			if top < 0 {
				return fmt.Errorf("--top must not be negative, got %d", top)
			}

			text, err := a.readAll()
			if err != nil {
				return err
			}
			entries := text.WordFrequency().Entries()
			if top > 0 {
				sort.SliceStable(entries, func(i, j int) bool {
					return entries[i].Count > entries[j].Count
				})
				entries = entries[:min(top, len(entries))]
			}

			w := bufio.NewWriter(a.out)
			for _, e := range entries {
				fmt.Fprintf(w, "%s %d\n", e.Word, e.Count)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Int("top", 0, "only the n most frequent words, by count (0 = all, by word)")
	return cmd
}

func (a *app) randomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print random lowercase words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			length, _ := cmd.Flags().GetInt("length")
			count, _ := cmd.Flags().GetInt("count")
			if length < 0 || count < 0 {
				return fmt.Errorf("--length and --count must not be negative")
			}
			seed := a.cfg.RandomSeed
			if cmd.Flags().Changed("seed") {
				seed, _ = cmd.Flags().GetUint64("seed")
			}

			gen := newGenerator(seed)
			w := bufio.NewWriter(a.out)
			for i := 0; i < count; i++ {
				word := gen.Generate(length)
				if err := writeLine(w, &word); err != nil {
					return err
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().Int("length", 8, "letters per word")
	cmd.Flags().Int("count", 1, "number of words")
	cmd.Flags().Uint64("seed", 0, "seed for reproducible output (default from config, 0 = entropy)")
	return cmd
}

func (a *app) joinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join [part...]",
		Short: "Join the arguments, or stdin lines when none are given",
		RunE: func(cmd *cobra.Command, args []string) error {
			sepFlag, _ := cmd.Flags().GetString("sep")
			sep := hstring.FromString(sepFlag)

			var parts []hstring.String
			if len(args) > 0 {
				for _, arg := range args {
					parts = append(parts, hstring.FromString(arg))
				}
			} else {
				err := a.eachLine(func(line *hstring.String) error {
					parts = append(parts, line.Clone())
					return nil
				})
				if err != nil {
					return err
				}
			}

			joined := sep.Join(parts)
			w := bufio.NewWriter(a.out)
			if err := writeLine(w, &joined); err != nil {
				return err
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("sep", " ", "separator placed between parts")
	return cmd
}

func (a *app) trimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trim",
		Short: "Strip leading and trailing whitespace from each stdin line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mapLines(func(line *hstring.String) { line.Trim() })
		},
	}
}

func (a *app) lowerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lower",
		Short: "Lowercase each stdin line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mapLines(func(line *hstring.String) { line.ToLower() })
		},
	}
}

func (a *app) mapLines(fn func(*hstring.String)) error {
	w := bufio.NewWriter(a.out)
	err := a.eachLine(func(line *hstring.String) error {
		fn(line)
		return writeLine(w, line)
	})
	if err != nil {
		return err
	}
	return w.Flush()
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config <file.json>",
		Short: "Write the effective configuration, flags applied, to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.SaveToFile(args[0]); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			_, err := fmt.Fprintf(a.out, "wrote %s\n", args[0])
			return err
		},
	}
}

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the word tools over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = a.cfg.Addr()
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return a.serve(ctx, addr)
		},
	}
	cmd.Flags().String("addr", "", "listen address host:port (default from config)")
	return cmd
}

// serve runs the HTTP server until ctx is done
func (a *app) serve(ctx context.Context, addr string) error {
	opts := []analyzer.Option{
		analyzer.WithTTL(time.Duration(a.cfg.CacheTTLSeconds) * time.Second),
		analyzer.WithMaxInput(int(a.cfg.MaxBodyBytes)),
	}
	var backend server.Analyzer
	if a.cfg.Shards > 1 {
		backend = analyzer.NewPool("words", a.cfg.Shards, a.cfg.CacheBytes, opts...)
	} else {
		backend = analyzer.New("words", a.cfg.CacheBytes, opts...)
	}

	srv := server.New(addr, backend, newGenerator(a.cfg.RandomSeed),
		server.WithMaxBody(a.cfg.MaxBodyBytes),
		server.WithRateLimit(a.cfg.RateLimit, a.cfg.RateBurst),
	)
	if err := srv.Start(); err != nil {
		return err
	}

	<-ctx.Done()
	logger.Info("Shutting down...")
	return srv.Stop(context.Background())
}

// newGenerator returns a seeded generator, or an entropy-seeded one for seed 0
func newGenerator(seed uint64) *hstring.WordGenerator {
	if seed == 0 {
		return hstring.NewWordGenerator(nil)
	}
	return hstring.NewSeededWordGenerator(seed)
}
