// Command tampctl compresses and decompresses files using the tamp codec.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/BrianPugh/tamp"
	"github.com/BrianPugh/tamp/internal/tampcli"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: tampctl <compress|decompress> [-config path] [-o output] input")
	}

	cmd := args[0]
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	configPath := fs.String("config", tampcli.ConfigPath(), "path to tampctl.toml")
	outPath := fs.String("o", "", "output path (default: stdout)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: tampctl %s [-config path] [-o output] input", cmd)
	}
	inPath := fs.Arg(0)

	cfg, err := tampcli.Load(*configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if !cfg.Stream.Verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}

	in, err := os.Open(inPath) // #nosec G304 -- user-supplied CLI path
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath) // #nosec G304 -- user-supplied CLI path
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	opts := []tamp.StreamOption{
		tamp.WithLogger(logger),
		tamp.WithBufferSize(cfg.Stream.BufferSize),
	}

	switch cmd {
	case "compress":
		conf := tamp.Conf{
			WindowBits:          cfg.Codec.WindowBits,
			LiteralBits:         cfg.Codec.LiteralBits,
			UseCustomDictionary: cfg.Codec.UseCustomDictionary,
		}
		return tamp.CompressStream(out, in, &conf, opts...)
	case "decompress":
		return tamp.DecompressStream(out, in, opts...)
	default:
		return fmt.Errorf("unknown command %q: expected compress or decompress", cmd)
	}
}
