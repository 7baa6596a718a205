package manifest

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/drivetap-org/drivetap/drive"
)

// Apply downloads every manifest entry that is missing locally or fails its
// checksum, verifying each downloaded copy before installing it.
func (m *Manifest) Apply(out, progress io.Writer) error {
	if m.g == nil {
		return fmt.Errorf("remote driver is invalid and not initialized")
	}

	for _, f := range m.Files {
		if f.existsLocal() {
			ok, err := f.verifyMd5Local()
			if err != nil {
				return err
			}
			if ok {
				_, _ = fmt.Fprintf(out, "%s is up to date\n", filepath.Join(f.LocalPath, f.Name))
				continue
			}
		}

		if err := f.install(m.g, out, progress); err != nil {
			return err
		}
	}

	return nil
}

func (f *File) existsLocal() bool {
	info, err := os.Stat(filepath.Join(f.LocalPath, f.Name))
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func (f *File) verifyMd5Local() (bool, error) {
	if f.Md5 == "" {
		return true, nil
	}

	sum, err := md5sumFile(filepath.Join(f.LocalPath, f.Name))
	if err != nil {
		return false, err
	}

	return sum == f.Md5, nil
}

func (f *File) install(g *drive.Drive, out, progress io.Writer) error {
	tmpFolder := filepath.Join(os.TempDir(), uuid.New().String())
	if err := os.Mkdir(tmpFolder, 0755); err != nil {
		return err
	}
	defer os.RemoveAll(tmpFolder)

	if err := g.Download(drive.DownloadArgs{
		Out:      ioutil.Discard,
		Progress: progress,
		Id:       f.Id,
		Path:     tmpFolder,
		Timeout:  time.Second * 120,
	}); err != nil {
		return err
	}

	entries, err := ioutil.ReadDir(tmpFolder)
	if err != nil {
		return err
	}
	if len(entries) != 1 {
		return fmt.Errorf("expected one downloaded file for %s, found %d", f.Id, len(entries))
	}

	downloaded := filepath.Join(tmpFolder, entries[0].Name())

	if f.Md5 != "" {
		sum, err := md5sumFile(downloaded)
		if err != nil {
			return err
		}
		if sum != f.Md5 {
			return fmt.Errorf("md5sum of downloaded file %s does not match manifest", f.Id)
		}
	}

	if err := os.MkdirAll(f.LocalPath, 0755); err != nil {
		return err
	}

	b, err := ioutil.ReadFile(downloaded)
	if err != nil {
		return err
	}

	dst := filepath.Join(f.LocalPath, f.Name)
	if err := ioutil.WriteFile(dst, b, 0644); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Installed %s\n", dst)
	return nil
}

func md5sumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
