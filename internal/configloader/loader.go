// Package configloader finds a markdownlint style, decodes it, and resolves
// it against the rule catalog. It implements project style discovery,
// .mdlrc support, built-in styles, alias normalisation, validation, and
// markdownlint conversion.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/mdlstyle/internal/logging"
	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/config"
	"github.com/yaklabco/mdlstyle/pkg/fsutil"
	"github.com/yaklabco/mdlstyle/pkg/ruleconfig"
)

// inlineSourceName names a style given as LoadOptions.Source.
const inlineSourceName = "<inline>"

// LoadOptions controls style loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for a project style.
	// Defaults to current working directory if empty.
	WorkingDir string

	// HomeDir is searched for a .mdlrc after WorkingDir and bounds the
	// upward search. Defaults to the user's home directory.
	HomeDir string

	// Path is an explicit style file. If set, discovery is skipped.
	Path string

	// Style is a style file path or built-in style name, resolved the way
	// a .mdlrc style setting is. If set, discovery is skipped.
	Style string

	// Source is a literal style. It takes precedence over Path and Style
	// and requires Format.
	Source []byte

	// SourceName names Source in error positions.
	SourceName string

	// Format overrides format detection for Path.
	Format config.Format

	// Catalog resolves defaults, aliases and tags.
	// Defaults to catalog.Default().
	Catalog *catalog.Registry

	// IgnoreMdlrc skips .mdlrc lookup.
	IgnoreMdlrc bool

	// IgnoreMarkdownlint skips markdownlint config conversion.
	IgnoreMarkdownlint bool
}

// LoadResult contains the resolved style and metadata.
type LoadResult struct {
	// Store holds the applied declarations. It is resolved and read-only.
	Store *ruleconfig.Store

	// Effective is the resolved configuration for the linting engine.
	Effective *ruleconfig.EffectiveConfig

	// Statements are the declarations applied, after alias normalisation.
	Statements []ruleconfig.Statement

	// Paths contains the discovered source paths, nil when discovery was skipped.
	Paths *SourcePaths

	// LoadedFrom lists the files that were actually read (in order).
	LoadedFrom []string

	// Format is the format the style was decoded from; empty when no
	// style was found.
	Format config.Format

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// source is a located, undecoded style.
type source struct {
	name   string
	format config.Format
	data   []byte
}

// Load resolves the style by checking, in order:
//  1. opts.Source
//  2. opts.Path, then opts.Style
//  3. Project style (.mdl_style.rb, .mdlstyle.* upward search)
//  4. The style named by .mdlrc (working directory, then home)
//  5. markdownlint config in the working directory (converted)
//
// When nothing is found the built-in "default" style is used, as mdl does,
// and a warning says so.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)
	reg := opts.Catalog
	if reg == nil {
		reg = catalog.Default()
	}
	lookup := ruleLookup{reg: reg}

	if err := opts.resolveDirs(); err != nil {
		return nil, err
	}

	result := &LoadResult{}
	src, err := locateSource(ctx, opts, result)
	if err != nil {
		return nil, err
	}

	if src == nil {
		data, _ := BuiltinStyle(DefaultStyleName)
		src = &source{name: DefaultStyleName, format: config.FormatStyle, data: data}
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("no style found; using built-in style %q", DefaultStyleName))
		logger.Debug("no style found", logging.FieldWorkingDir, opts.WorkingDir)
	}

	parsed, err := config.Parse(src.format, src.name, src.data, config.ParseOptions{Tags: lookup})
	if err != nil {
		return nil, fmt.Errorf("load style: %w", err)
	}
	result.Format = src.format
	result.Warnings = append(result.Warnings, parsed.Warnings...)
	stmts, dupWarnings := normalizeStatements(parsed.Statements, lookup)
	result.Warnings = append(result.Warnings, dupWarnings...)
	for i, stmt := range stmts {
		if original := parsed.Statements[i].RuleID; original != stmt.RuleID {
			logger.Debug("resolved rule alias", logging.FieldAlias, original, logging.FieldRuleID, stmt.RuleID)
		}
	}
	logger.Debug("style decoded",
		logging.FieldSource, src.name,
		logging.FieldFormat, src.format,
		logging.FieldStatements, len(stmts))

	store := ruleconfig.NewStore()
	if err := store.ApplyAll(stmts); err != nil {
		return nil, fmt.Errorf("apply style: %w", err)
	}
	for _, stmt := range stmts {
		if stmt.Kind == ruleconfig.KindSetStyle && store.IsExcluded(stmt.RuleID) {
			logger.Debug("style options kept for excluded rule", logging.FieldRuleID, stmt.RuleID)
		}
	}

	validation := Validate(stmts, reg)
	for _, issue := range validation.Warnings {
		logger.Debug("validation warning",
			logging.FieldRuleID, issue.RuleID,
			logging.FieldOption, issue.Option)
	}
	result.Warnings = append(result.Warnings, validation.Messages()...)

	result.Store = store
	result.Statements = stmts
	result.Effective = store.Resolve(reg)

	logger.Debug("style resolved",
		logging.FieldBaseline, result.Effective.BaselineEnabled(),
		logging.FieldEnabled, len(result.Effective.EnabledIDs()),
		logging.FieldDisabled, len(result.Effective.DisabledIDs()),
		logging.FieldStyled, countStyled(result.Effective),
		logging.FieldWarnings, len(result.Warnings))

	return result, nil
}

func countStyled(eff *ruleconfig.EffectiveConfig) int {
	count := 0
	for _, st := range eff.Rules() {
		if st.Styled {
			count++
		}
	}
	return count
}

func (o *LoadOptions) resolveDirs() error {
	if o.WorkingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		o.WorkingDir = wd
	}
	if o.HomeDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			o.HomeDir = home
		}
	}
	return nil
}

// locateSource finds the style to decode, or nil when there is none.
func locateSource(ctx context.Context, opts LoadOptions, result *LoadResult) (*source, error) {
	logger := logging.FromContext(ctx)

	switch {
	case opts.Source != nil:
		if !opts.Format.IsValid() {
			return nil, fmt.Errorf("inline style: unknown format %q", opts.Format)
		}
		name := opts.SourceName
		if name == "" {
			name = inlineSourceName
		}
		return &source{name: name, format: opts.Format, data: opts.Source}, nil
	case opts.Path != "":
		return readSource(ctx, opts.Path, opts.Format, result)
	case opts.Style != "":
		return styleSource(ctx, opts.Style, expandStylePath(opts.Style, opts.WorkingDir, opts.HomeDir), result)
	}

	paths, err := DiscoverPaths(ctx, opts.WorkingDir, opts.HomeDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	result.Paths = paths
	logger.Debug("discovered style sources",
		logging.FieldPath, paths.Project,
		logging.FieldMdlrc, paths.Mdlrc,
		logging.FieldSource, paths.Markdownlint)

	if paths.Project != "" {
		if paths.Markdownlint != "" && !opts.IgnoreMarkdownlint {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("both %s and %s exist; using %s", paths.Project, paths.Markdownlint, paths.Project))
		}
		return readSource(ctx, paths.Project, "", result)
	}

	if paths.Mdlrc != "" && !opts.IgnoreMdlrc {
		src, err := mdlrcSource(ctx, paths.Mdlrc, opts.HomeDir, result)
		if err != nil || src != nil {
			return src, err
		}
	}

	if paths.Markdownlint != "" && !opts.IgnoreMarkdownlint {
		if IsJavaScriptConfig(paths.Markdownlint) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("cannot convert JavaScript config %s; write a style file instead", paths.Markdownlint))
			return nil, nil
		}
		return readSource(ctx, paths.Markdownlint, config.FormatMarkdownlint, result)
	}

	return nil, nil
}

// mdlrcSource reads a .mdlrc and returns the style it names, or nil when it
// names none.
func mdlrcSource(ctx context.Context, path, homeDir string, result *LoadResult) (*source, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	data, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load mdlrc: %w", err)
	}
	result.LoadedFrom = append(result.LoadedFrom, path)

	rc, err := ParseMdlrc(path, data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	for _, key := range rc.IgnoredKeys() {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s: setting %q does not affect the style; ignored", path, key))
	}
	if rc.Style == "" {
		return nil, nil
	}
	return styleSource(ctx, rc.Style, rc.StylePath(homeDir), result)
}

// styleSource resolves a style setting: an existing file wins, then a
// built-in style of that name.
func styleSource(ctx context.Context, style, path string, result *LoadResult) (*source, error) {
	if fsutil.Exists(path) {
		return readSource(ctx, path, "", result)
	}
	if data, ok := BuiltinStyle(style); ok {
		return &source{name: style, format: config.FormatStyle, data: data}, nil
	}
	return nil, fmt.Errorf("style %q: %w", style, os.ErrNotExist)
}

// readSource reads a style file. An empty format is detected from the
// file name, falling back to the style DSL.
func readSource(ctx context.Context, path string, format config.Format, result *LoadResult) (*source, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	if format == "" {
		detected, err := config.DetectFormat(path)
		if err != nil {
			detected = config.FormatStyle
		}
		format = detected
	}

	data, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load style: %w", err)
	}
	result.LoadedFrom = append(result.LoadedFrom, path)
	return &source{name: path, format: format, data: data}, nil
}

// normalizeStatements rewrites rule aliases to canonical IDs. This allows
// users to write names like "no-trailing-spaces" in a style. If a rule is
// declared under two different keys with the same kind, warns; the last
// declaration still wins.
func normalizeStatements(stmts []ruleconfig.Statement, lookup ruleLookup) ([]ruleconfig.Statement, []string) {
	type seenKey struct {
		kind ruleconfig.StatementKind
		id   ruleconfig.RuleID
	}
	seen := make(map[seenKey]string)
	var warnings []string

	normalized := make([]ruleconfig.Statement, 0, len(stmts))
	for _, stmt := range stmts {
		if stmt.Kind == ruleconfig.KindEnableAll || stmt.RuleID == "" {
			normalized = append(normalized, stmt)
			continue
		}

		original := stmt.RuleID.String()
		if canonical, found := lookup.ResolveRule(original); found {
			stmt.RuleID = canonical
		}

		key := seenKey{kind: stmt.Kind, id: stmt.RuleID}
		if prev, exists := seen[key]; exists && prev != original {
			warnings = append(warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s; using last value",
					prev, original, stmt.RuleID))
		}
		seen[key] = original
		normalized = append(normalized, stmt)
	}
	return normalized, warnings
}
