package drive

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	DirectoryMimeType    = "application/vnd.google-apps.folder"
	GoogleAppsMimePrefix = "application/vnd.google-apps."

	MimeTypePdf  = "application/pdf"
	MimeTypeXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimeTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeTypePptx = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

// DefaultExportMime maps Google document types to the format they are
// converted to when downloaded. Types not listed here fall back to pdf.
var DefaultExportMime = map[string]string{
	GoogleAppsMimePrefix + "spreadsheet":  MimeTypeXlsx,
	GoogleAppsMimePrefix + "document":     MimeTypeDocx,
	GoogleAppsMimePrefix + "presentation": MimeTypePptx,
	GoogleAppsMimePrefix + "drawing":      MimeTypePdf,
	GoogleAppsMimePrefix + "form":         MimeTypePdf,
}

var exportExtension = map[string]string{
	MimeTypeXlsx: ".xlsx",
	MimeTypeDocx: ".docx",
	MimeTypePptx: ".pptx",
	MimeTypePdf:  ".pdf",
}

// canDownload reports whether a node has a native binary representation.
// Google-native document types must be exported instead.
func canDownload(mimeType string) bool {
	return !strings.HasPrefix(mimeType, GoogleAppsMimePrefix)
}

func getExportMime(userMime, fileMime string) (string, error) {
	if userMime != "" {
		return userMime, nil
	}

	if !strings.HasPrefix(fileMime, GoogleAppsMimePrefix) || fileMime == DirectoryMimeType {
		return "", &UnsupportedContentError{Mime: fileMime}
	}

	exportMime, ok := DefaultExportMime[fileMime]
	if !ok {
		return MimeTypePdf, nil
	}

	return exportMime, nil
}

func getExportFilename(name, exportMime string) string {
	ext, ok := exportExtension[exportMime]
	if !ok {
		return name
	}

	return name + ext
}

type ExportArgs struct {
	Out     io.Writer
	Id      string
	Mime    string
	Force   bool
	JsonOut bool
}

func (g *Drive) Export(args ExportArgs) error {
	f, err := g.service.Files.Get(args.Id).Fields("name", "mimeType").Do()
	if err != nil {
		return &RemoteError{Op: "get file", Id: args.Id, Err: err}
	}

	exportMime, err := getExportMime(args.Mime, f.MimeType)
	if err != nil {
		return err
	}

	filename := getExportFilename(f.Name, exportMime)

	res, err := g.service.Files.Export(args.Id, exportMime).Download()
	if err != nil {
		return &RemoteError{Op: "export file", Id: args.Id, Err: err}
	}

	// Close body on function exit
	defer res.Body.Close()

	// Check if file exists
	if !args.Force && fileExists(filename) {
		return fmt.Errorf("file '%s' already exists, use --force to overwrite", filename)
	}

	outFile, err := os.Create(filename)
	if err != nil {
		return &LocalError{Path: filename, Err: err}
	}

	// Close file on function exit
	defer outFile.Close()

	_, err = io.Copy(outFile, res.Body)
	if err != nil {
		return &LocalError{Path: filename, Err: err}
	}

	if args.JsonOut {
		jb, err := json.Marshal(map[string]string{
			"exported": filename,
			"mimeType": exportMime,
		})
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(args.Out, string(jb))
		return nil
	}

	_, _ = fmt.Fprintf(args.Out, "Exported '%s' with mime type: '%s'\n", filename, exportMime)
	return nil
}
