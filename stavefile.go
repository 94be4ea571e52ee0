//go:build stave

package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"

	"github.com/yaklabco/mdlstyle/internal/configloader"
	"github.com/yaklabco/mdlstyle/internal/logging"
	"github.com/yaklabco/mdlstyle/internal/ui/pretty"
	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/config"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"fmt": Lint.Fmt,
	"s":   Style.Show,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Style st.Namespace
)

// ---------------------------------------------------------------------------
// Top-level targets
// ---------------------------------------------------------------------------

// Build compiles every package.
func Build() error {
	fmt.Println("Building packages...")
	return sh.RunV("go", "build", "./...")
}

// Check runs format, lint, and test sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	if err := sh.Rm("coverage.out"); err != nil {
		return err
	}
	return sh.Rm("coverage.html")
}

// Deps ensures all dependencies are downloaded.
func Deps() error {
	fmt.Println("Downloading dependencies...")
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Coverage generates a test coverage report and opens it.
func Coverage() error {
	st.Deps(Test.Default)
	fmt.Println("Generating coverage report...")
	if err := sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html"); err != nil {
		return err
	}
	return sh.RunV("open", "coverage.html")
}

// ---------------------------------------------------------------------------
// Test namespace
// ---------------------------------------------------------------------------

// Default runs all tests using gotestsum with race detection and coverage.
func (Test) Default() error {
	fmt.Println("Running tests...")
	return runTests("pkgname-and-test-fails")
}

// Verbose runs all tests with standard-verbose output.
func (Test) Verbose() error {
	fmt.Println("Running tests (verbose)...")
	return runTests("standard-verbose")
}

// ---------------------------------------------------------------------------
// Lint namespace
// ---------------------------------------------------------------------------

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix (for CI pipelines).
func (Lint) CI() error {
	fmt.Println("Running linters (CI mode)...")
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	fmt.Println("Formatting code...")
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck verifies code formatting without modifying files.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	fmt.Println("✓ Code formatting OK")
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	fmt.Println("Running go vet...")
	return sh.RunV("go", "vet", "./...")
}

// ---------------------------------------------------------------------------
// CI namespace
// ---------------------------------------------------------------------------

// Gate runs all CI checks in idiomatic Go order.
func (CI) Gate() error {
	fmt.Println("Running CI gate checks...")
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		CI.ModTidy,
		CI.Cross,
	)
	fmt.Println("\n✓ All CI gate checks passed!")
	return nil
}

// ModTidy checks that go.mod and go.sum are tidy.
func (CI) ModTidy() error {
	fmt.Println("Checking go.mod/go.sum are tidy...")
	before, err := readModFiles()
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := readModFiles()
	if err != nil {
		return err
	}
	if before != after {
		return errors.New("go.mod or go.sum changed after 'go mod tidy' - please commit the changes")
	}
	fmt.Println("✓ go.mod/go.sum are tidy")
	return nil
}

// Cross builds for the supported platforms to catch platform-specific issues.
func (CI) Cross() error {
	fmt.Println("Cross-compiling for supported platforms...")
	platforms := []struct{ goos, goarch string }{
		{"linux", "amd64"},
		{"linux", "arm64"},
		{"darwin", "arm64"},
		{"windows", "amd64"},
		{"freebsd", "amd64"},
	}
	for _, p := range platforms {
		fmt.Printf("  Building %s/%s...\n", p.goos, p.goarch)
		env := map[string]string{
			"GOOS":        p.goos,
			"GOARCH":      p.goarch,
			"CGO_ENABLED": "0",
		}
		if err := sh.RunWith(env, "go", "build", "./..."); err != nil {
			return fmt.Errorf("build failed for %s/%s: %w", p.goos, p.goarch, err)
		}
	}
	fmt.Println("✓ All platforms build successfully")
	return nil
}

// ---------------------------------------------------------------------------
// Style namespace
// ---------------------------------------------------------------------------

// Show resolves the style that applies in dir and prints every rule's state.
func (Style) Show(ctx context.Context, dir string) error {
	ctx = logging.WithLogger(ctx, logging.NewInteractive())

	colorEnabled := pretty.IsColorEnabled("auto", os.Stdout)
	styles := pretty.NewStyles(colorEnabled)
	result, err := configloader.Load(ctx, configloader.LoadOptions{WorkingDir: dir})
	if err != nil {
		fmt.Fprint(os.Stderr, styles.FormatError(err))
		return err
	}

	table := pretty.NewTableFormatter(styles, colorEnabled, pretty.TerminalWidth(os.Stdout))
	fmt.Print(table.FormatTable(result.Effective, catalog.Default()))
	fmt.Print(styles.FormatSummary(pretty.Report{
		Effective: result.Effective,
		Sources:   result.LoadedFrom,
		Format:    string(result.Format),
		Warnings:  result.Warnings,
	}))
	fmt.Print(styles.FormatSummaryOneLine(result.Effective))
	return nil
}

// Convert converts a markdownlint config into a project style file in the
// current directory. format is one of style, yaml, json or hcl.
func (Style) Convert(ctx context.Context, path, format string) error {
	ctx = logging.WithLogger(ctx, logging.NewInteractive())

	target, err := config.ParseFormat(cmp.Or(format, string(config.FormatStyle)))
	if err != nil {
		return err
	}
	result, err := configloader.ConvertMarkdownlintConfig(ctx, path, target, nil)
	if err != nil {
		return err
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled("auto", os.Stderr))
	fmt.Fprint(os.Stderr, styles.FormatWarnings(result.Warnings))

	out := configloader.DefaultStyleFile(target)
	if _, err := configloader.WriteStyle(ctx, out, result.Output, false); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d statements)\n", out, len(result.Statements))
	return nil
}

// Init writes a starter style to .mdl_style.rb in the current directory.
// force replaces an existing file, keeping a .bak copy.
func (Style) Init(ctx context.Context, force bool) error {
	logger := logging.NewInteractive()
	ctx = logging.WithLogger(ctx, logger)

	out := configloader.DefaultStyleFile(config.FormatStyle)
	backup, err := configloader.WriteStyle(ctx, out, config.GenerateTemplate(catalog.Default()), force)
	if err != nil {
		return err
	}
	if backup != "" {
		logger.Warn("replaced existing style", logging.FieldPath, out, logging.FieldBackup, backup)
	}
	logger.Info("created style file", logging.FieldPath, out)
	return nil
}

// Builtins lists the styles that can be named without a file.
func (Style) Builtins() {
	fmt.Println(strings.Join(configloader.BuiltinStyles(), "\n"))
}

// ---------------------------------------------------------------------------
// Helpers (unexported, not targets)
// ---------------------------------------------------------------------------

// runTests runs the suite through gotestsum with the given output format.
func runTests(format string) error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", format,
		"--",
		"-v", "-race",
		"-p", nCores,
		"-parallel", nCores,
		"./...",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	)
}

// readModFiles returns go.mod and go.sum concatenated.
func readModFiles() (string, error) {
	var builder strings.Builder
	for _, name := range []string{"go.mod", "go.sum"} {
		data, err := os.ReadFile(name)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", name, err)
		}
		builder.Write(data)
	}
	return builder.String(), nil
}
