// Command paginationgen generates pagination request, response and sort types
// for structs annotated with //pagination:request or //pagination:response.
//
// Typical use:
//
//	//go:generate go run github.com/lighter/common/cmd/paginationgen -type=User
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lighter/common/internal/pagination"
	"github.com/lighter/common/internal/pagination/gen"
	"github.com/lighter/common/internal/shared/logger"
)

func main() {
	var (
		typeNames = flag.String("type", "", "comma-separated list of type names; empty means every annotated type")
		output    = flag.String("output", "", "output file name; default <type>_pagination_gen.go")
		strict    = flag.Bool("strict", false, "require an explicit order:\"default\" field")
		verbose   = flag.Bool("v", false, "verbose logging")
	)
	flag.Usage = usage
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	log := logger.New(&logger.Config{Level: level, Format: "text", Output: os.Stderr})

	dir := "."
	if args := flag.Args(); len(args) > 0 {
		dir = args[0]
	}

	var types []string
	if *typeNames != "" {
		for _, t := range strings.Split(*typeNames, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
	}

	if err := run(log, dir, types, *output, *strict); err != nil {
		var cfgErr *pagination.ConfigurationError
		if errors.As(err, &cfgErr) {
			log.Error("invalid pagination annotations", "entity", cfgErr.Entity, "field", cfgErr.Field, logger.Err(err))
		} else {
			log.Error("generation failed", logger.Err(err))
		}
		os.Exit(1)
	}
}

func run(log *logger.Logger, dir string, types []string, output string, strict bool) error {
	pkg, err := gen.ParseDir(dir, types)
	if err != nil {
		return err
	}
	if len(pkg.Targets) == 0 {
		log.Warn("no annotated types found", "dir", dir)
		return nil
	}

	if output == "" {
		output = gen.OutputName(types)
	}
	path := output
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, output)
	}

	src, err := gen.Render(pkg, gen.Options{Strict: strict, Filename: path})
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	names := make([]string, 0, len(pkg.Targets))
	for _, t := range pkg.Targets {
		names = append(names, t.Entity.Name)
	}
	log.Debug("generated pagination types", "package", pkg.Name, "types", names, "file", path)
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: paginationgen [flags] [directory]\n\nFlags:\n")
	flag.PrintDefaults()
}
