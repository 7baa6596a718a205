package drive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-git-ignore"
)

// DefaultIgnoreFile, when present in the target root, filters which relative
// paths get mirrored. Gitignore syntax.
const DefaultIgnoreFile = ".drivetapignore"

type ignoreFunc func(string) bool

func prepareIgnorer(path string) (ignoreFunc, error) {
	acceptAll := func(string) bool {
		return false
	}

	if !fileExists(path) {
		return acceptAll, nil
	}

	ignorer, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return acceptAll, fmt.Errorf("failed to prepare ignorer: %s", err)
	}

	return ignorer.MatchesPath, nil
}

type realizer struct {
	out          io.Writer
	shouldIgnore ignoreFunc
}

// realize mirrors the reconstructed tree onto targetDir: one directory per
// folder node, one file per materialized node, nesting intact. Sibling name
// collisions are reported and resolved by suffixing the id of the later
// sibling, first occurrence keeps the plain name.
func realize(roots []*Node, targetDir string, out io.Writer) error {
	if err := os.MkdirAll(targetDir, 0775); err != nil {
		return &LocalError{Path: targetDir, Err: err}
	}

	shouldIgnore, err := prepareIgnorer(filepath.Join(targetDir, DefaultIgnoreFile))
	if err != nil {
		return err
	}

	r := &realizer{
		out:          out,
		shouldIgnore: shouldIgnore,
	}

	return r.place(roots, targetDir, "")
}

func (r *realizer) place(nodes []*Node, dir, relDir string) error {
	seen := make(map[string]string)

	for _, n := range nodes {
		name := n.Name

		if dupeId, clash := seen[name]; clash {
			renamed := collisionName(n)
			_, _ = fmt.Fprintf(r.out, "Name collision between %s and %s on '%s', writing '%s'\n",
				n.Id, dupeId, filepath.Join(relDir, name), renamed)
			name = renamed
		} else {
			seen[name] = n.Id
		}

		relPath := filepath.Join(relDir, name)
		if r.shouldIgnore(relPath) {
			continue
		}

		fpath := filepath.Join(dir, name)

		if n.IsDir() {
			if err := os.MkdirAll(fpath, 0775); err != nil {
				return &LocalError{Path: fpath, Err: err}
			}
			if err := r.place(n.Children, fpath, relPath); err != nil {
				return err
			}
			continue
		}

		// Nodes skipped by the materializer have no staged content
		if n.LocalPath == "" {
			continue
		}

		if err := moveFile(n.LocalPath, fpath); err != nil {
			return err
		}
	}

	return nil
}

func collisionName(n *Node) string {
	ext := filepath.Ext(n.Name)
	return strings.TrimSuffix(n.Name, ext) + "_" + n.Id + ext
}

func moveFile(src, dst string) error {
	if err := mkdir(dst); err != nil {
		return err
	}

	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	// Rename can fail across filesystems, fall back to copying
	srcFile, err := os.Open(src)
	if err != nil {
		return &LocalError{Path: src, Err: err}
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return &LocalError{Path: dst, Err: err}
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return &LocalError{Path: dst, Err: err}
	}

	if err := dstFile.Close(); err != nil {
		return &LocalError{Path: dst, Err: err}
	}

	return os.Remove(src)
}
