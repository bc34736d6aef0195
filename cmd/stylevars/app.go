package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"bennypowers.dev/stylevars/internal/config"
	"bennypowers.dev/stylevars/internal/convertor"
	"bennypowers.dev/stylevars/internal/dialect"
	"bennypowers.dev/stylevars/internal/lexer"
	"bennypowers.dev/stylevars/internal/log"
	"bennypowers.dev/stylevars/internal/translator"
	"bennypowers.dev/stylevars/internal/version"
	"github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "stylevars",
		Usage:   "Translate preprocessor variables between stylus, less and scss",
		Version: version.Full(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log cache traffic and skipped input",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Minimum log level (debug, info, warn, error)",
				Value: "warn",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := log.ParseLevel(cmd.String("log-level"))
			if err != nil {
				return ctx, err
			}
			if cmd.Bool("verbose") {
				level = log.LevelDebug
			}
			log.SetLevel(level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:      "translate",
				Usage:     "Print a variables file in another dialect",
				ArgsUsage: "<file | ->",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "from",
						Usage: "Source dialect (default: from the file extension)",
					},
					&cli.StringFlag{
						Name:     "to",
						Usage:    "Target dialect",
						Required: true,
					},
				},
				Action: translateAction,
			},
			{
				Name:      "inject",
				Usage:     "Insert variables into the <style> blocks of a document",
				ArgsUsage: "<document | ->",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "Project directory to load .config/stylevars.yaml or package.json from",
					},
					&cli.StringSliceFlag{
						Name:  "var",
						Usage: "Variables file to inject (repeatable, after configured files)",
					},
					&cli.StringSliceFlag{
						Name:  "import",
						Usage: "Import statement to prepend to matching blocks (repeatable)",
					},
					&cli.StringFlag{
						Name:  "cache-version",
						Usage: "Cache version for variables files",
					},
				},
				Action: injectAction,
			},
			{
				Name:      "tokens",
				Usage:     "Dump the token stream of a variables file",
				ArgsUsage: "<file | ->",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dialect",
						Usage: "Dialect to lex with (default: from the file extension)",
					},
				},
				Action: tokensAction,
			},
		},
	}
}

func translateAction(_ context.Context, cmd *cli.Command) error {
	name, text, err := readInput(cmd)
	if err != nil {
		return err
	}
	from, err := dialectFor(cmd.String("from"), name)
	if err != nil {
		return err
	}
	to, err := dialect.Parse(cmd.String("to"))
	if err != nil {
		return err
	}

	out, err := translator.New().Translate(text, from, to)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.Root().Writer, out)
	return err
}

func injectAction(ctx context.Context, cmd *cli.Command) error {
	_, document, err := readInput(cmd)
	if err != nil {
		return err
	}

	var files, imports []string
	cacheVersion := cmd.String("cache-version")

	if dir := cmd.String("config"); dir != "" {
		cfg, err := config.Load(dir)
		if err != nil {
			return err
		}
		if cfg == nil {
			log.Warn("no stylevars configuration in %s", dir)
		} else {
			if files, err = cfg.ExpandFiles(dir); err != nil {
				return err
			}
			imports = cfg.ImportStatements
			if cacheVersion == "" {
				cacheVersion = cfg.CacheVersion
			}
		}
	}
	files = append(files, cmd.StringSlice("var")...)
	imports = append(imports, cmd.StringSlice("import")...)

	conv := convertor.New(translator.New())
	if cacheVersion != "" {
		conv.SetCacheVersion(cacheVersion)
	}
	if err := conv.ReadAll(ctx, files...); err != nil {
		return err
	}

	out, err := conv.Convert(document, imports)
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.Root().Writer, out)
	return err
}

func tokensAction(_ context.Context, cmd *cli.Command) error {
	name, text, err := readInput(cmd)
	if err != nil {
		return err
	}
	d, err := dialectFor(cmd.String("dialect"), name)
	if err != nil {
		return err
	}

	tokens, err := lexer.Tokenize(text, d)
	if err != nil {
		return err
	}
	for _, tok := range tokens {
		if _, err := fmt.Fprintln(cmd.Root().Writer, tok); err != nil {
			return err
		}
	}
	return nil
}

// readInput reads the command's single file argument, "-" meaning stdin
func readInput(cmd *cli.Command) (string, string, error) {
	if cmd.NArg() != 1 {
		return "", "", fmt.Errorf("%s: expected exactly one file argument", cmd.Name)
	}
	name := cmd.Args().First()

	var (
		data []byte
		err  error
	)
	if name == "-" {
		reader := cmd.Root().Reader
		if reader == nil {
			reader = os.Stdin
		}
		data, err = io.ReadAll(reader)
	} else {
		data, err = os.ReadFile(name) //nolint:gosec // G304: path given on the command line
	}
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", name, err)
	}
	return name, string(data), nil
}

// dialectFor parses an explicit dialect flag or infers it from the file name
func dialectFor(flag, name string) (dialect.Dialect, error) {
	if flag != "" {
		return dialect.Parse(flag)
	}
	if d := dialect.FromPath(name); d != dialect.Unknown {
		return d, nil
	}
	return dialect.Unknown, fmt.Errorf("cannot infer the dialect of %q, pass it explicitly", name)
}
