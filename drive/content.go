package drive

import (
	"fmt"
	"io/ioutil"

	"google.golang.org/api/googleapi"
)

// QueryFiles lists all files matching a raw remote query, following
// pagination until exhausted.
func (g *Drive) QueryFiles(query string) ([]*Node, error) {
	files, err := g.listAllFiles(listAllFilesArgs{
		query:     query,
		fields:    []googleapi.Field{"nextPageToken", "files(id,name,mimeType,size,parents,modifiedTime)"},
		sortOrder: "modifiedTime",
	})
	if err != nil {
		return nil, err
	}

	nodes := make([]*Node, 0, len(files))
	for _, f := range files {
		nodes = append(nodes, newNode(f))
	}

	return nodes, nil
}

// ListCsvFiles returns the csv files directly below a folder.
func (g *Drive) ListCsvFiles(folderId string) ([]*Node, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType='text/csv' and trashed = false", folderId)
	return g.QueryFiles(query)
}

// Contents downloads the full binary content of a file into memory.
// Intended for the record streams, which need whole files; mirroring uses
// the streamed materializer instead.
func (g *Drive) Contents(id string) ([]byte, error) {
	res, err := g.service.Files.Get(id).Download()
	if err != nil {
		return nil, &RemoteError{Op: "download file", Id: id, Err: err}
	}
	defer res.Body.Close()

	b, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, &RemoteError{Op: "read file", Id: id, Err: err}
	}

	return b, nil
}
