package drive

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

type DownloadArgs struct {
	Out      io.Writer
	Progress io.Writer
	Id       string
	Path     string
	Timeout  time.Duration
	JsonOut  bool
}

// Download fetches a single file into args.Path, exporting document types
// to their default format.
func (g *Drive) Download(args DownloadArgs) error {
	m := g.newMaterializer(args.Out, args.Progress, args.Timeout)

	fpath, name, err := m.materialize(args.Id, "", args.Path)
	if err != nil {
		return err
	}

	if args.JsonOut {
		jb, err := json.Marshal(map[string]string{
			"id":   args.Id,
			"name": name,
			"path": fpath,
		})
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(args.Out, string(jb))
		return nil
	}

	_, _ = fmt.Fprintf(args.Out, "Downloaded '%s' -> %s\n", name, fpath)
	return nil
}
