package manifest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// Generate scaffolds a manifest from the regular files under dir. Remote ids
// are left blank for the operator to fill in.
func Generate(dir string, out io.Writer) error {
	m := &Manifest{
		Kind:       SpecKind,
		ApiVersion: SpecApiVersionV1Beta1,
	}

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !info.Mode().IsRegular() {
			return nil
		}

		sum, err := md5sumFile(path)
		if err != nil {
			return err
		}

		m.Files = append(m.Files, &File{
			Name:      info.Name(),
			LocalPath: filepath.Dir(path),
			Md5:       sum,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to scan %s: %s", dir, err)
	}

	b, err := yaml.Marshal(m)
	if err != nil {
		return err
	}

	_, err = out.Write(b)
	return err
}
