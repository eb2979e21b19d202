package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/nguyentantai21042004/audio-digest/internal/config"
)

const defaultConfigPath = "config.yaml"

type options struct {
	configPath  string
	language    string
	summaryLang string
	outputDir   string
	testMode    bool
	watch       bool

	dir    string
	prefix string

	// set records which flags were given explicitly.
	set map[string]bool
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("digest", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{set: map[string]bool{}}
	fs.StringVar(&opts.configPath, "config", defaultConfigPath, "path to the YAML config file")
	fs.StringVar(&opts.language, "language", "th", "language code of the recordings")
	fs.StringVar(&opts.language, "l", "th", "shorthand for -language")
	fs.StringVar(&opts.summaryLang, "summary-lang", "thai", "language the summary is written in")
	fs.StringVar(&opts.outputDir, "output", "output", "output directory")
	fs.StringVar(&opts.outputDir, "o", "output", "shorthand for -output")
	fs.BoolVar(&opts.testMode, "test", false, "process only the first minute of each file")
	fs.BoolVar(&opts.watch, "watch", false, "watch <directory> and digest every family that settles")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: digest [flags] <directory> <prefix>\n       digest -watch [flags] <directory>\n\nflags:\n")
		fs.PrintDefaults()
	}

	rest, err := parseInterspersed(fs, args)
	if err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	switch {
	case opts.watch && len(rest) == 1:
		opts.dir = rest[0]
	case !opts.watch && len(rest) == 2:
		opts.dir, opts.prefix = rest[0], rest[1]
	default:
		fs.Usage()
		return nil, fmt.Errorf("unexpected arguments: %v", rest)
	}

	return opts, nil
}

// parseInterspersed lets flags follow positionals, as in
// "digest ./recordings meet --test -l en". flag stops at the first
// positional, so parsing resumes after each one. Everything after "--"
// is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// loadConfig reads the config file, falling back to defaults when the
// default path does not exist, then applies env secrets and flag overrides.
func loadConfig(opts *options, getenv func(string) string) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) || opts.set["config"] {
			return nil, err
		}
		cfg = config.Default()
	}

	cfg.ApplyEnv(getenv)

	if opts.set["language"] || opts.set["l"] {
		cfg.Transcription.Language = opts.language
	}
	if opts.set["summary-lang"] {
		cfg.Summary.Language = opts.summaryLang
	}
	if opts.set["output"] || opts.set["o"] {
		cfg.Paths.Output = opts.outputDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
