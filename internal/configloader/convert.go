package configloader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/mdlstyle/internal/logging"
	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/config"
	"github.com/yaklabco/mdlstyle/pkg/fsutil"
	"github.com/yaklabco/mdlstyle/pkg/ruleconfig"
)

// styleFilePermissions is the file mode for written style files (world-readable).
const styleFilePermissions = 0o644

// ErrStyleExists is returned by WriteStyle when the target exists and
// overwriting was not requested.
var ErrStyleExists = errors.New("style file already exists")

// ConversionResult contains the result of converting a markdownlint config.
type ConversionResult struct {
	// Statements are the converted declarations in canonical order.
	Statements []ruleconfig.Statement

	// Output is the encoded style, including a header comment.
	Output []byte

	// Format is the format Output is written in.
	Format config.Format

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string

	// SourcePath is the path to the original markdownlint config.
	SourcePath string
}

// ConvertMarkdownlintConfig converts a markdownlint config file to a style
// in the given format. reg defaults to catalog.Default().
func ConvertMarkdownlintConfig(
	ctx context.Context,
	path string,
	format config.Format,
	reg *catalog.Registry,
) (*ConversionResult, error) {
	if IsJavaScriptConfig(path) {
		return nil, fmt.Errorf("cannot convert JavaScript config file %q; please write a style file manually", path)
	}
	if !format.CanEncode() {
		return nil, fmt.Errorf("convert %s: %w: %s", path, config.ErrEncodeUnsupported, format)
	}
	if reg == nil {
		reg = catalog.Default()
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}

	lookup := ruleLookup{reg: reg}
	parsed, err := config.Parse(config.FormatMarkdownlint, path, content, config.ParseOptions{Tags: lookup})
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}

	result := &ConversionResult{Format: format, SourcePath: path}
	result.Warnings = append(result.Warnings, parsed.Warnings...)

	stmts, dupWarnings := normalizeStatements(parsed.Statements, lookup)
	result.Warnings = append(result.Warnings, dupWarnings...)

	store := ruleconfig.NewStore()
	if err := store.ApplyAll(stmts); err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}
	result.Warnings = append(result.Warnings, Validate(stmts, reg).Messages()...)
	if !store.BaselineEnabled() {
		result.Warnings = append(result.Warnings,
			"'default: false' has no style equivalent; the converted style enables no rules")
	}

	result.Statements = store.Statements()
	body, err := config.Encode(format, result.Statements)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	result.Output = append([]byte(GenerateConversionHeader(path, format)), body...)

	logging.FromContext(ctx).Debug("converted markdownlint config",
		logging.FieldPath, path,
		logging.FieldFormat, format,
		logging.FieldStatements, len(result.Statements),
		logging.FieldWarnings, len(result.Warnings))

	return result, nil
}

// GenerateConversionHeader returns a header comment for converted styles.
func GenerateConversionHeader(sourcePath string, format config.Format) string {
	prefix := "#"
	if format == config.FormatJSON {
		prefix = "//"
	}
	return fmt.Sprintf("%s markdownlint style\n%s Converted from: %s\n\n", prefix, prefix, filepath.Base(sourcePath))
}

// DefaultStyleFile returns the project style file name for a format.
func DefaultStyleFile(format config.Format) string {
	switch format {
	case config.FormatYAML:
		return ".mdlstyle.yml"
	case config.FormatJSON:
		return ".mdlstyle.json"
	case config.FormatHCL:
		return ".mdlstyle.hcl"
	default:
		return ".mdl_style.rb"
	}
}

// WriteStyle writes an encoded style to path atomically. An existing file
// is only replaced when overwrite is set, and is first copied to a sidecar
// backup. It returns the backup path, or "" when none was made.
func WriteStyle(ctx context.Context, path string, data []byte, overwrite bool) (string, error) {
	if !overwrite {
		if err := fsutil.WriteNew(ctx, path, data, styleFilePermissions); err != nil {
			if errors.Is(err, fsutil.ErrExists) {
				return "", fmt.Errorf("%w: %s", ErrStyleExists, path)
			}
			return "", err
		}
		return "", nil
	}

	backup, err := fsutil.CreateBackup(ctx, path)
	if err != nil {
		return "", err
	}
	if err := fsutil.WriteAtomic(ctx, path, data, styleFilePermissions); err != nil {
		return backup, err
	}
	if backup != "" {
		logging.FromContext(ctx).Debug("backed up style", logging.FieldPath, path, logging.FieldBackup, backup)
	}
	return backup, nil
}
