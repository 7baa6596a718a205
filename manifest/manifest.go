package manifest

import (
	"fmt"
	"io/ioutil"

	"gopkg.in/yaml.v2"

	"github.com/drivetap-org/drivetap/drive"
)

const (
	SpecKind              = "DriveManifest"
	SpecApiVersionV1Beta1 = "drivetap/v1beta1"
)

// Manifest declares a set of remote files with their expected local
// placement and checksum. Apply makes the local state match.
type Manifest struct {
	Kind       string  `yaml:"kind"`
	ApiVersion string  `yaml:"apiVersion"`
	Files      []*File `yaml:"files"`

	g *drive.Drive
}

type File struct {
	Id        string `yaml:"id"`
	Name      string `yaml:"name"`
	LocalPath string `yaml:"localPath"`
	Md5       string `yaml:"md5"`
}

func Load(fileName string, g *drive.Drive) (*Manifest, error) {
	b, err := ioutil.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	return parse(b, g)
}

func parse(b []byte, g *drive.Drive) (*Manifest, error) {
	type kind struct {
		Kind       string
		ApiVersion string
	}

	k := new(kind)
	if err := yaml.Unmarshal(b, k); err != nil {
		return nil, err
	}

	if k.Kind != SpecKind {
		return nil, fmt.Errorf("manifest kind is not valid. expected:%s", SpecKind)
	}

	switch v := k.ApiVersion; v {
	case SpecApiVersionV1Beta1:
	default:
		return nil, fmt.Errorf("manifest api version is not valid. expected:%s", SpecApiVersionV1Beta1)
	}

	m := new(Manifest)
	if err := yaml.Unmarshal(b, m); err != nil {
		return nil, err
	}

	for _, f := range m.Files {
		if err := f.validate(); err != nil {
			return nil, err
		}
	}

	m.g = g
	return m, nil
}

func (f *File) validate() error {
	if f.Id == "" {
		return fmt.Errorf("manifest file entry is missing id")
	}
	if f.Name == "" {
		return fmt.Errorf("manifest file entry %s is missing name", f.Id)
	}
	if f.LocalPath == "" {
		return fmt.Errorf("manifest file entry %s is missing localPath", f.Id)
	}
	return nil
}
