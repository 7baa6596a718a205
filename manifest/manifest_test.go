package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

const validManifest = `
kind: DriveManifest
apiVersion: drivetap/v1beta1
files:
  - id: 1EmoLLfGZZ2ho6MLKf027EKiy3N59QQ6f
    name: test.txt
    localPath: /tmp/drivetap-test
    md5: 098f6bcd4621d373cade4e832627b4f6
`

func TestParse(t *testing.T) {
	m, err := parse([]byte(validManifest), nil)
	require.NoError(t, err)
	require.Len(t, m.Files, 1)
	assert.Equal(t, "test.txt", m.Files[0].Name)
	assert.Equal(t, "/tmp/drivetap-test", m.Files[0].LocalPath)
}

func TestParseRejectsWrongKind(t *testing.T) {
	_, err := parse([]byte("kind: Wrong\napiVersion: drivetap/v1beta1\n"), nil)
	assert.Error(t, err)
}

func TestParseRejectsWrongApiVersion(t *testing.T) {
	_, err := parse([]byte("kind: DriveManifest\napiVersion: drivetap/v2\n"), nil)
	assert.Error(t, err)
}

func TestParseRejectsIncompleteEntry(t *testing.T) {
	const missingName = `
kind: DriveManifest
apiVersion: drivetap/v1beta1
files:
  - id: abc
    localPath: /tmp
`
	_, err := parse([]byte(missingName), nil)
	assert.Error(t, err)
}

func TestVerifyMd5Local(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.txt"), []byte("test"), 0644))

	f := &File{
		Name:      "test.txt",
		LocalPath: dir,
		Md5:       "098f6bcd4621d373cade4e832627b4f6",
	}

	require.True(t, f.existsLocal())

	ok, err := f.verifyMd5Local()
	require.NoError(t, err)
	assert.True(t, ok)

	f.Md5 = "0000000000000000000000000000dead"
	ok, err = f.verifyMd5Local()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExistsLocal(t *testing.T) {
	f := &File{
		Name:      "nope.txt",
		LocalPath: t.TempDir(),
	}
	assert.False(t, f.existsLocal())
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("aaa"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("bbb"), 0644))

	out := &bytes.Buffer{}
	require.NoError(t, Generate(dir, out))

	m := &Manifest{}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), m))
	assert.Equal(t, SpecKind, m.Kind)
	assert.Len(t, m.Files, 2)

	for _, f := range m.Files {
		assert.NotEmpty(t, f.Md5)
		assert.NotEmpty(t, f.LocalPath)
	}
}
