package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/floatkit/internal/config"
)

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  floatkit config validate [--path PATH]")
	fmt.Fprintln(w, "  floatkit config print [--path PATH] [--effective|--defaults]")
	fmt.Fprintln(w, "  floatkit config explain [--path PATH] <yaml.path>")
	fmt.Fprintln(w, "  floatkit config init [--path PATH] [--force]")
}

func loadConfigResult(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printConfigUsage(os.Stderr)
		return 2
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/floatkit/config.yaml)")

	switch args[0] {
	case "validate":
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		res, err := loadConfigResult(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		for _, f := range res.Files {
			fmt.Printf("  loaded %s\n", f)
		}
		return 0

	case "print":
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		printEffective := fs.Bool("effective", false, "Print effective config (default)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		_ = printEffective // default
		if !*printDefaults {
			res, err := loadConfigResult(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			cfg = res.Config
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	case "explain":
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if fs.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "explain requires <yaml.path>")
			return 2
		}
		queryPath := fs.Arg(0)

		res, err := loadConfigResult(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		value, src, err := config.Explain(res, queryPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		out, err := yaml.Marshal(value)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		fmt.Printf("path: %s\n", queryPath)
		fmt.Printf("source: %s\n", formatSource(src))
		fmt.Printf("value:\n%s", string(out))
		return 0

	case "init":
		force := fs.Bool("force", false, "Overwrite an existing config file")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		target := *path
		if target == "" {
			p, err := config.DefaultConfigPath()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			target = p
		}
		if _, err := os.Stat(target); err == nil && !*force {
			fmt.Fprintf(os.Stderr, "%s already exists (use --force to overwrite)\n", target)
			return 1
		}
		if err := config.DefaultConfig().SaveTo(target); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("wrote %s\n", target)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceDefault:
		if src.Name != "" {
			return "default:" + src.Name
		}
		return "default"
	default:
		return string(src.Kind)
	}
}
