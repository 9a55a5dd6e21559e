// vpxglb converts pinball tables into binary glTF files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/vpxglb/internal/config"
	"github.com/Faultbox/vpxglb/internal/export"
	"github.com/Faultbox/vpxglb/internal/logger"
	"github.com/Faultbox/vpxglb/pkg/glb"
	"github.com/Faultbox/vpxglb/pkg/table"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "export", "x":
		cmdExport(args)
	case "info":
		cmdInfo(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`vpxglb - pinball table to glTF converter

Usage:
  vpxglb <command> [options]

Commands:
  export [options] <table.yaml>    Convert a table to GLB
  info <file.glb>                  Show and validate a GLB file

Examples:
  vpxglb export -o table.glb table.yaml
  vpxglb export -group-by none -game-lights=false table.yaml
  vpxglb export -write-config vpxglb.toml table.yaml
  vpxglb info table.glb`)
}

// exportArgs is the parsed command line of the export command.
type exportArgs struct {
	input  string
	output string
	flags  *config.Flags
}

var errNoInput = errors.New("no table file given")

func parseExportArgs(args []string) (*exportArgs, error) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	out := fs.String("o", "", "Output file (default: table name with .glb)")
	flags := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, errNoInput
	}

	input := fs.Arg(0)
	output := *out
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".glb"
	}
	return &exportArgs{input: input, output: output, flags: flags}, nil
}

func cmdExport(args []string) {
	parsed, err := parseExportArgs(args)
	switch {
	case errors.Is(err, errNoInput):
		fmt.Fprintln(os.Stderr, "Usage: vpxglb export [options] <table.yaml>")
		os.Exit(1)
	case errors.Is(err, flag.ErrHelp):
		os.Exit(0)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	flags, input, path := parsed.flags, parsed.input, parsed.output

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Sugar.Debugf("Config: %+v", cfg)

	if flags.WriteConfig != "" {
		if err := cfg.SaveTo(flags.WriteConfig); err != nil {
			logger.Error("failed to write config", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("wrote config", zap.String("path", flags.WriteConfig))
	}

	t, err := table.Load(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	res, err := export.ToFile(t, cfg.Export, path)
	if err != nil {
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d meshes, %d materials (%d warnings) to %s\n",
		res.Meshes, res.Materials, len(res.Warnings), path)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: vpxglb info <file.glb>")
		os.Exit(1)
	}

	f, err := glb.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	doc := &f.Document

	fmt.Printf("File:      %s\n", args[0])
	fmt.Printf("Version:   %d\n", f.Header.Version)
	fmt.Printf("Size:      %.2f KB\n", float64(f.Header.Length)/1024)
	fmt.Printf("JSON:      %d bytes\n", len(f.JSON))
	fmt.Printf("BIN:       %d bytes\n", len(f.BIN))
	if doc.Asset.Generator != "" {
		fmt.Printf("Generator: %s\n", doc.Asset.Generator)
	}
	fmt.Println()

	lights := 0
	if doc.Extensions != nil && doc.Extensions.LightsPunctual != nil {
		lights = len(doc.Extensions.LightsPunctual.Lights)
	}
	fmt.Printf("  %-10s %d\n", "nodes", len(doc.Nodes))
	fmt.Printf("  %-10s %d\n", "meshes", len(doc.Meshes))
	fmt.Printf("  %-10s %d\n", "materials", len(doc.Materials))
	fmt.Printf("  %-10s %d\n", "textures", len(doc.Textures))
	fmt.Printf("  %-10s %d\n", "cameras", len(doc.Cameras))
	fmt.Printf("  %-10s %d\n", "lights", lights)
	if len(doc.ExtensionsUsed) > 0 {
		fmt.Printf("  %-10s %s\n", "extensions", strings.Join(doc.ExtensionsUsed, ", "))
	}
	fmt.Println()

	if err := f.Validate(); err != nil {
		fmt.Println("Validation failed:")
		for _, line := range strings.Split(err.Error(), "; ") {
			fmt.Printf("  %s\n", line)
		}
		os.Exit(1)
	}
	fmt.Println("Valid")
}
