package drive

import (
	"path/filepath"

	"google.golang.org/api/drive/v3"
)

func (g *Drive) newPathfinder() *remotePathfinder {
	return &remotePathfinder{
		service: g.service.Files,
		cache:   make(map[string]*drive.File),
	}
}

// remotePathfinder resolves the absolute remote path of a file by chasing
// parent references upwards, caching every file it fetches on the way.
type remotePathfinder struct {
	service *drive.FilesService
	cache   map[string]*drive.File
}

// absPath joins the names of every ancestor between the root folder and f.
// The root folder itself is not part of the path.
func (p *remotePathfinder) absPath(f *drive.File) (string, error) {
	segments := []string{f.Name}

	next := f.Parents
	for len(next) > 0 {
		parent, err := p.getParent(next[0])
		if err != nil {
			return "", err
		}

		if len(parent.Parents) == 0 {
			break
		}

		segments = append([]string{parent.Name}, segments...)
		next = parent.Parents
	}

	return filepath.Join(segments...), nil
}

func (p *remotePathfinder) getParent(id string) (*drive.File, error) {
	if f, ok := p.cache[id]; ok {
		return f, nil
	}

	f, err := p.service.Get(id).Fields("id", "name", "parents").Do()
	if err != nil {
		return nil, &RemoteError{Op: "get file", Id: id, Err: err}
	}

	p.cache[f.Id] = f

	return f, nil
}
