package espack

import (
	"path"
	"strings"

	"github.com/go-errors/errors"
	"github.com/spf13/afero"
)

// fileSystemResolver resolves specifiers against the directory of the
// importing module. Bare package specifiers get no special treatment; a
// resolver that understands package layouts can be injected instead.
type fileSystemResolver struct {
	fs afero.Fs
}

// NewFileSystemResolver returns the default Resolver over the given
// filesystem. A specifier without an extension is probed as written, with
// ".js" appended, as a directory index and finally with ".ts" appended.
func NewFileSystemResolver(fs afero.Fs) Resolver {
	return &fileSystemResolver{fs: fs}
}

func (r *fileSystemResolver) Resolve(specifier string, referrerDir string) (string, error) {
	if specifier == "" {
		return "", errors.New("empty module specifier")
	}

	resolved := specifier
	if strings.HasPrefix(resolved, "/") {
		resolved = path.Clean(resolved)
	} else {
		resolved = path.Join(referrerDir, resolved)
	}

	candidates := []string{
		resolved,
		resolved + ".js",
		path.Join(resolved, "index.js"),
		resolved + ".ts",
	}
	for _, candidate := range candidates {
		exists, err := afero.Exists(r.fs, candidate)
		if err != nil || !exists {
			continue
		}
		if isDir, err := afero.IsDir(r.fs, candidate); err == nil && isDir {
			continue
		}
		return candidate, nil
	}

	return "", errors.Errorf("no module file for %s", resolved)
}
