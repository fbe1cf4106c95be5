package tableio

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolvePath resolves a table path either as given, or relative to root
// if the given path doesn't exist as-is. Mirrors the fallback resolution
// the original Python csvreader performed (original_source/src/common/
// csvreader.py:_get_csv_path) so table paths may be passed relative to the
// working directory or relative to a project root.
func ResolvePath(path, root string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	candidate := filepath.Join(root, path)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", &InputError{
		File: path,
		Msg: fmt.Sprintf(
			"file does not exist as given or relative to %q; pass an absolute path or one relative to the project root",
			root,
		),
	}
}
