package drive

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// materializer fetches node content and writes it to local storage. Repeated
// requests for the same id are served from the staged map, so a file linked
// into multiple folders is fetched once per sync.
type materializer struct {
	drive    *Drive
	out      io.Writer
	progress io.Writer
	timeout  time.Duration
	staged   map[string]string
}

func (g *Drive) newMaterializer(out, progress io.Writer, timeout time.Duration) *materializer {
	return &materializer{
		drive:    g,
		out:      out,
		progress: progress,
		timeout:  timeout,
		staged:   make(map[string]string),
	}
}

// materialize writes the content of the given node to targetDir and returns
// the written path together with the final file name. The final name differs
// from the fallback name when the node is an exported document, in which case
// the extension of the export format is appended.
//
// A metadata lookup failure is not fatal: the fallback name already known
// from the parent listing is used instead.
func (m *materializer) materialize(id, fallbackName, targetDir string) (string, string, error) {
	if fpath, ok := m.staged[id]; ok {
		return fpath, filepath.Base(fpath), nil
	}

	name := fallbackName
	mimeType := ""

	f, err := m.drive.service.Files.Get(id).Fields("name", "mimeType").Do()
	if err == nil {
		name = f.Name
		mimeType = f.MimeType
	}

	if name == "" {
		return "", "", fmt.Errorf("no name known for file %s", id)
	}

	timeoutReaderWrapper, ctx := getTimeoutReaderWrapperContext(m.timeout)

	var res *http.Response

	if canDownload(mimeType) {
		res, err = m.drive.service.Files.Get(id).Context(ctx).Download()
		if err != nil {
			if isTimeoutError(err) {
				return "", "", fmt.Errorf("failed to download file: timeout, no data was transferred for %v", m.timeout)
			}
			return "", "", &RemoteError{Op: "download file", Id: id, Err: err}
		}
	} else {
		exportMime, exportErr := getExportMime("", mimeType)
		if exportErr != nil {
			return "", "", &UnsupportedContentError{Id: id, Mime: mimeType}
		}

		name = getExportFilename(name, exportMime)

		res, err = m.drive.service.Files.Export(id, exportMime).Context(ctx).Download()
		if err != nil {
			if isTimeoutError(err) {
				return "", "", fmt.Errorf("failed to export file: timeout, no data was transferred for %v", m.timeout)
			}
			return "", "", &RemoteError{Op: "export file", Id: id, Err: err}
		}
	}

	// Close body on function exit
	defer res.Body.Close()

	fpath := filepath.Join(targetDir, name)

	_, _ = fmt.Fprintf(m.out, "Downloading %s -> %s\n", name, fpath)

	if err := m.saveFile(timeoutReaderWrapper(res.Body), res.ContentLength, fpath); err != nil {
		return "", "", err
	}

	m.staged[id] = fpath

	return fpath, name, nil
}

func (m *materializer) saveFile(body io.Reader, contentLength int64, fpath string) error {
	// Ensure any parent directories exists
	if err := mkdir(fpath); err != nil {
		return err
	}

	outFile, err := os.Create(fpath)
	if err != nil {
		return &LocalError{Path: fpath, Err: err}
	}

	srcReader := getProgressReader(body, m.progress, contentLength)

	_, err = io.Copy(outFile, srcReader)
	if err != nil {
		_ = outFile.Close()
		_ = os.Remove(fpath)
		return &LocalError{Path: fpath, Err: err}
	}

	return outFile.Close()
}
