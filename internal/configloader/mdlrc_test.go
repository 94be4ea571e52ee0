package configloader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/config"
)

func TestParseMdlrc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		wantStyle string
		wantLine  int
		wantKeys  []string
	}{
		{"double quoted", `style "~/.mdl_styles.rb"`, "~/.mdl_styles.rb", 1, []string{}},
		{"single quoted", "# comment\n\nstyle '/etc/mdl/style.rb'", "/etc/mdl/style.rb", 3, []string{}},
		{"symbol", "style :relaxed", "relaxed", 1, []string{}},
		{"bare with comment", "style relaxed # lenient", "relaxed", 1, []string{}},
		{"assignment", "style='team.rb'", "team.rb", 1, []string{}},
		{"escaped quote", `style "it\"s.rb"`, `it"s.rb`, 1, []string{}},
		{"last style wins", "style 'a.rb'\nstyle 'b.rb'", "b.rb", 2, []string{}},
		{"other settings", "git_recurse true\nrules 'MD001,~MD013'\nstyle 'x.rb'", "x.rb", 3, []string{"git_recurse", "rules"}},
		{"no style", "verbose true", "", 0, []string{"verbose"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			rc, err := ParseMdlrc("/home/me/.mdlrc", []byte(testCase.content))
			require.NoError(t, err)
			assert.Equal(t, testCase.wantStyle, rc.Style)
			assert.Equal(t, testCase.wantLine, rc.StyleLine)
			assert.Equal(t, testCase.wantKeys, rc.IgnoredKeys())
		})
	}
}

func TestParseMdlrc_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		wantLine int
	}{
		{"missing value", "all: true\nstyle\n", 2},
		{"unterminated double quote", `style "abc`, 1},
		{"unterminated single quote", "\nstyle 'abc", 2},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseMdlrc(".mdlrc", []byte(testCase.content))
			require.ErrorIs(t, err, config.ErrParse)

			var perr *config.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, testCase.wantLine, perr.Line)
		})
	}
}

func TestMdlrc_StylePath(t *testing.T) {
	t.Parallel()

	home := filepath.FromSlash("/home/me")
	tests := []struct {
		style string
		want  string
	}{
		{"~/.mdl_styles.rb", filepath.Join(home, ".mdl_styles.rb")},
		{"~", home},
		{"/etc/mdl/style.rb", "/etc/mdl/style.rb"},
		{"styles/team.rb", filepath.FromSlash("/work/project/styles/team.rb")},
		{"", ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.style, func(t *testing.T) {
			t.Parallel()

			rc := &Mdlrc{Path: filepath.FromSlash("/work/project/.mdlrc"), Style: testCase.style}
			assert.Equal(t, testCase.want, rc.StylePath(home))
		})
	}
}

func TestBuiltinStyle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"default", "relaxed"}, BuiltinStyles())

	for _, name := range BuiltinStyles() {
		data, ok := BuiltinStyle(name)
		require.True(t, ok, name)

		parsed, err := config.Parse(config.FormatStyle, name, data, config.ParseOptions{Tags: ruleLookup{reg: catalog.Default()}})
		require.NoError(t, err, name)
		assert.NotEmpty(t, parsed.Statements, name)
	}

	for _, name := range []string{"", "missing", "../default", "default.rb"} {
		_, ok := BuiltinStyle(name)
		assert.False(t, ok, name)
	}
}
