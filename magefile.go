//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target when running mage without arguments.
var Default = Build

// Build builds the server and generator binaries.
func Build() error {
	mg.Deps(Generate)
	fmt.Println("Building server...")
	if err := sh.Run("go", "build", "-o", "bin/server", "./cmd/server"); err != nil {
		return err
	}
	fmt.Println("Building paginationgen...")
	return sh.Run("go", "build", "-o", "bin/paginationgen", "./cmd/paginationgen")
}

// Generate runs all code generation (pagination types, wire, swagger).
func Generate() error {
	mg.SerialDeps(Pagination, Wire, Swagger)
	return nil
}

// Pagination regenerates pagination types via go:generate directives.
func Pagination() error {
	fmt.Println("Running go generate...")
	return sh.Run("go", "generate", "./internal/...")
}

// Swagger regenerates the OpenAPI docs served at /swagger.
func Swagger() error {
	fmt.Println("Running swag...")
	return sh.Run("swag", "init",
		"-g", "docs.go",
		"-d", "cmd/server,internal/module/user,internal/shared/errors",
		"-o", "cmd/server/docs",
		"--outputTypes", "go",
	)
}

// Wire runs wire to generate dependency injection code.
func Wire() error {
	fmt.Println("Running wire...")

	// Find all directories containing wire.go files
	wireDirs, err := findWireDirs()
	if err != nil {
		return fmt.Errorf("finding wire directories: %w", err)
	}

	for _, dir := range wireDirs {
		fmt.Printf("  Generating wire code for %s\n", dir)
		if err := sh.Run("wire", dir); err != nil {
			return fmt.Errorf("wire %s: %w", dir, err)
		}
	}

	return nil
}

// findWireDirs finds all directories containing wire.go files.
func findWireDirs() ([]string, error) {
	var dirs []string
	seen := make(map[string]bool)

	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip vendor, hidden and reference directories
		if info.IsDir() {
			name := info.Name()
			if name == "vendor" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
				return filepath.SkipDir
			}
			return nil
		}

		// Look for wire.go files
		if info.Name() == "wire.go" {
			dir := filepath.Dir(path)
			if !seen[dir] {
				seen[dir] = true
				dirs = append(dirs, "./"+dir)
			}
		}

		return nil
	})

	return dirs, err
}

// Test runs all tests.
func Test() error {
	fmt.Println("Running tests...")
	return sh.RunV("go", "test", "-race", "./...")
}

// TestCover runs tests with coverage.
func TestCover() error {
	fmt.Println("Running tests with coverage...")
	return sh.RunV("go", "test", "-cover", "-coverprofile=coverage.out", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	fmt.Println("Running linter...")
	return sh.RunV("golangci-lint", "run", "./...")
}

// Vet runs go vet.
func Vet() error {
	fmt.Println("Running go vet...")
	return sh.RunV("go", "vet", "./...")
}

// Verify regenerates code and fails when the working tree differs, so stale
// *_pagination_gen.go, wire_gen.go or swagger docs never reach CI.
func Verify() error {
	mg.Deps(Generate)
	fmt.Println("Checking generated files are up to date...")
	out, err := sh.Output("git", "status", "--porcelain", "--", "internal", "cmd/server/docs")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("generated code is stale:\n%s", out)
	}
	return nil
}

// Clean removes build artifacts. Generated sources are checked in and kept.
func Clean() error {
	fmt.Println("Cleaning...")
	for _, path := range []string{"bin", "coverage.out"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println("Running go mod tidy...")
	return sh.Run("go", "mod", "tidy")
}

// All runs tidy, generate, vet, lint, test, and build.
func All() error {
	mg.SerialDeps(Tidy, Generate, Vet, Lint, Test, Build)
	return nil
}

// Dev builds and runs the server with debug logging and swagger enabled.
func Dev() error {
	mg.Deps(Build)
	fmt.Println("Starting server...")
	env := map[string]string{
		"LIGHTER_LOG_LEVEL":      "debug",
		"LIGHTER_LOG_FORMAT":     "text",
		"LIGHTER_SERVER_SWAGGER": "true",
	}
	return sh.RunWithV(env, "./bin/server")
}

// CI runs the CI pipeline (tidy, verify generated code, vet, test with coverage).
func CI() error {
	mg.SerialDeps(Tidy, Verify, Vet, TestCover)
	return nil
}

// Install installs development tools.
func Install() error {
	fmt.Println("Installing development tools...")

	tools := []string{
		"github.com/google/wire/cmd/wire@latest",
		"github.com/swaggo/swag/cmd/swag@latest",
		"github.com/golangci/golangci-lint/cmd/golangci-lint@latest",
	}

	for _, tool := range tools {
		fmt.Printf("  Installing %s\n", tool)
		if err := sh.Run("go", "install", tool); err != nil {
			return fmt.Errorf("installing %s: %w", tool, err)
		}
	}

	return nil
}
