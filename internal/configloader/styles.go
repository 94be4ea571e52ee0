package configloader

import (
	"embed"
	"io/fs"
	"path"
	"strings"
)

// DefaultStyleName is the built-in style used when no style is found.
const DefaultStyleName = "default"

//go:embed styles/*.rb
var builtinStyles embed.FS

// BuiltinStyle returns the source of a named built-in style ("default",
// "relaxed"). A .mdlrc style value that is not an existing file is looked
// up here.
func BuiltinStyle(name string) ([]byte, bool) {
	if name == "" || strings.ContainsAny(name, `/\.`) {
		return nil, false
	}
	data, err := builtinStyles.ReadFile(path.Join("styles", name+".rb"))
	if err != nil {
		return nil, false
	}
	return data, true
}

// BuiltinStyles lists the built-in style names, sorted.
func BuiltinStyles() []string {
	entries, err := fs.ReadDir(builtinStyles, "styles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".rb"))
	}
	return names
}
