package main

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/outofforest/euid"
	"github.com/outofforest/euid/pkg/api"
	"github.com/outofforest/euid/pkg/batch"
	"github.com/outofforest/euid/pkg/clock"
	"github.com/outofforest/euid/pkg/config"
	"github.com/outofforest/euid/pkg/idgen"
	"github.com/outofforest/euid/pkg/parse"
	"github.com/outofforest/euid/pkg/thttp"
	"github.com/outofforest/euid/pkg/tnet"
	"github.com/outofforest/logger"
	"github.com/outofforest/parallel"
)

type rootFlags struct {
	epoch      string
	ntpServer  string
	noChecksum bool
}

func newRootCommand() *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:           "euid",
		Short:         "Creates and decodes extendable unique identifiers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.epoch, "epoch", "",
		"epoch subtracted from the clock, in milliseconds or RFC3339 (env "+config.EnvEpoch+")")
	root.PersistentFlags().StringVar(&flags.ntpServer, "ntp", "",
		"NTP server used to correct the clock (env "+config.EnvNTPServer+")")
	root.PersistentFlags().BoolVar(&flags.noChecksum, "no-checksum", false,
		"do not embed checksum in the text form (env "+config.EnvChecksum+")")

	root.AddCommand(
		newCreateCommand(&flags),
		newDecodeCommand(),
		newFromCommand(&flags),
		newBatchCommand(&flags),
		newServeCommand(&flags),
	)
	return root
}

func loadConfig(cmd *cobra.Command, flags *rootFlags) (config.Config, error) {
	cfg := config.Default()
	if err := config.FromEnv(&cfg); err != nil {
		return config.Config{}, err
	}

	if flags.epoch != "" {
		epoch, err := parse.ParseEpoch(flags.epoch)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Epoch = epoch
	}
	if flags.ntpServer != "" {
		cfg.NTPServer = flags.ntpServer
	}
	if cmd.Flags().Changed("no-checksum") {
		cfg.Checksum = !flags.noChecksum
	}
	return cfg, nil
}

func newGenerator(ctx context.Context, cfg config.Config) *euid.Generator {
	opts := cfg.Options()
	if cfg.NTPServer != "" {
		clk := clock.NewNTP(cfg.NTPServer)
		if err := clk.Sync(ctx); err != nil {
			logger.Get(ctx).Warn("Using uncorrected system clock", zap.Error(err))
		}
		opts = append(opts, euid.WithClock(clk))
	}
	return euid.NewGenerator(opts...)
}

func newCreateCommand(flags *rootFlags) *cobra.Command {
	var (
		extension string
		shardKey  string
		shardBits uint8
		count     int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Creates identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if extension != "" {
				if cfg.Extension, err = parse.ParseExtension(extension); err != nil {
					return err
				}
				cfg.HasExtension = true
				cfg.ShardKey = ""
			}
			if shardKey != "" {
				cfg.ShardKey = shardKey
				cfg.HasExtension = false
			}
			if cmd.Flags().Changed("shard-bits") {
				cfg.ShardBits = shardBits
			}
			if count < 1 {
				return errors.Errorf("count must be positive, got %d", count)
			}

			ext, _, err := cfg.ResolveExtension()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			seq := idgen.NewSequence(newGenerator(ctx, cfg), ext)
			out := cmd.OutOrStdout()
			for range count {
				id, err := seq.Next(ctx)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintln(out, id.Encode(cfg.Checksum)); err != nil {
					return errors.WithStack(err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&extension, "extension", "", "extension stored in identifiers (env "+
		config.EnvExtension+")")
	cmd.Flags().StringVar(&shardKey, "shard-key", "", "key hashed into the extension (env "+
		config.EnvShardKey+")")
	cmd.Flags().Uint8Var(&shardBits, "shard-bits", 0, "number of extension bits used by the shard key (env "+
		config.EnvShardBits+")")
	cmd.Flags().IntVar(&count, "count", 1, "number of monotonic identifiers to create")
	return cmd
}

func newDecodeCommand() *cobra.Command {
	var epoch string

	cmd := &cobra.Command{
		Use:   "decode [text...]",
		Short: "Decodes identifiers given as arguments or found in standard input",
		RunE: func(cmd *cobra.Command, args []string) error {
			var epochMS uint64
			if epoch != "" {
				var err error
				if epochMS, err = parse.ParseEpoch(epoch); err != nil {
					return err
				}
			}

			var ids []euid.EUID
			if len(args) > 0 {
				var err error
				if ids, err = euid.ParseAll(args...); err != nil {
					return err
				}
			} else {
				text, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.WithStack(err)
				}
				ids = idgen.Find(string(text))
			}

			out := cmd.OutOrStdout()
			for _, id := range ids {
				if err := describe(out, id, epochMS); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&epoch, "epoch", "", "epoch used when identifiers were created")
	return cmd
}

func newFromCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "from <decimal>",
		Short: "Converts a 128-bit decimal number to the text form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			v, ok := new(big.Int).SetString(args[0], 10)
			if !ok {
				return errors.Errorf("invalid decimal number %q", args[0])
			}
			id, err := euid.FromBig(v)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), id.Encode(cfg.Checksum))
			return errors.WithStack(err)
		},
	}
}

func newBatchCommand(flags *rootFlags) *cobra.Command {
	var bc batch.Config

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Creates identifiers concurrently, one sequence per shard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			started := time.Now()
			ids, err := batch.Generate(ctx, newGenerator(ctx, cfg), bc)
			if err != nil {
				return err
			}
			logger.Get(ctx).Info("Identifiers generated", zap.Int("count", len(ids)),
				zap.Int("shards", bc.Shards), zap.Duration("duration", time.Since(started)))

			out := cmd.OutOrStdout()
			for _, id := range ids {
				if _, err := fmt.Fprintln(out, id.Encode(cfg.Checksum)); err != nil {
					return errors.WithStack(err)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&bc.Count, "count", 10, "number of identifiers")
	cmd.Flags().IntVar(&bc.Shards, "shards", 1, "number of concurrent sequences")
	return cmd
}

func describe(out io.Writer, id euid.EUID, epoch uint64) error {
	hi, lo := id.Words()
	ext, hasExt := id.Extension()
	extText := "none"
	if hasExt {
		extText = fmt.Sprintf("%d", ext)
	}

	_, err := fmt.Fprintf(out, "%s\n  decimal:   %s\n  hex:       %016x%016x\n  uuid:      %s\n"+
		"  timestamp: %d\n  time:      %s\n  extension: %s\n  version:   %d\n",
		id, id.Big(), hi, lo, id.UUID(), id.Timestamp(), id.Time(epoch).Format(time.RFC3339Nano), extText,
		id.Version())
	return errors.WithStack(err)
}

func newServeCommand(flags *rootFlags) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serves the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			ext, _, err := cfg.ResolveExtension()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			l, err := tnet.Listen(ctx, address)
			if err != nil {
				return err
			}

			return parallel.Run(ctx, func(ctx context.Context, spawn parallel.SpawnFn) error {
				opts := cfg.Options()
				if cfg.NTPServer != "" {
					clk := clock.NewNTP(cfg.NTPServer)
					opts = append(opts, euid.WithClock(clk))
					spawn("ntp", parallel.Fail, clk.Run)
				}

				server := thttp.NewServer(l, api.NewHandler(api.Config{
					Generator: euid.NewGenerator(opts...),
					Extension: ext,
					Checksum:  cfg.Checksum,
				}), thttp.Middleware(thttp.StandardMiddleware))
				spawn("server", parallel.Fail, server.Run)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&address, "listen", "localhost:8080", "address to listen on, tcp:host:port or unix:path")
	return cmd
}
