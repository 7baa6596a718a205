package drive

import (
	"encoding/json"
	"fmt"
	"io"

	"google.golang.org/api/drive/v3"
)

type FileInfoArgs struct {
	Out         io.Writer
	Id          string
	SizeInBytes bool
	JsonOut     bool
}

func (g *Drive) Info(args FileInfoArgs) error {
	f, err := g.service.Files.Get(args.Id).Fields("id", "name", "size", "createdTime", "modifiedTime", "md5Checksum", "mimeType", "parents", "shared", "description", "webContentLink", "webViewLink").Do()
	if err != nil {
		return &RemoteError{Op: "get file", Id: args.Id, Err: err}
	}

	pathfinder := g.newPathfinder()
	absPath, err := pathfinder.absPath(f)
	if err != nil {
		return err
	}

	if args.JsonOut {
		printFileInfoJson(printFileInfoArgs{
			out:         args.Out,
			file:        f,
			path:        absPath,
			sizeInBytes: args.SizeInBytes,
		})
		return nil
	}

	printFileInfo(printFileInfoArgs{
		out:         args.Out,
		file:        f,
		path:        absPath,
		sizeInBytes: args.SizeInBytes,
	})

	return nil
}

type printFileInfoArgs struct {
	out         io.Writer
	file        *drive.File
	path        string
	sizeInBytes bool
}

func printFileInfoJson(args printFileInfoArgs) {
	f := args.file

	items := map[string]string{
		"id":          f.Id,
		"name":        f.Name,
		"path":        args.path,
		"description": f.Description,
		"mimeType":    f.MimeType,
		"size":        formatSize(f.Size, args.sizeInBytes),
		"createdTime": formatDatetime(f.CreatedTime),
		"modified":    formatDatetime(f.ModifiedTime),
		"md5Checksum": f.Md5Checksum,
		"shared":      formatBool(f.Shared),
		"parents":     formatList(f.Parents),
		"viewUrl":     f.WebViewLink,
		"downloadUrl": f.WebContentLink,
	}

	jb, _ := json.Marshal(items)
	_, _ = fmt.Fprintln(args.out, string(jb))
}

func printFileInfo(args printFileInfoArgs) {
	f := args.file

	items := []kv{
		{"Id", f.Id},
		{"Name", f.Name},
		{"Path", args.path},
		{"Description", f.Description},
		{"Mime", f.MimeType},
		{"Size", formatSize(f.Size, args.sizeInBytes)},
		{"Created", formatDatetime(f.CreatedTime)},
		{"Modified", formatDatetime(f.ModifiedTime)},
		{"Md5sum", f.Md5Checksum},
		{"Shared", formatBool(f.Shared)},
		{"Parents", formatList(f.Parents)},
		{"ViewUrl", f.WebViewLink},
		{"DownloadUrl", f.WebContentLink},
	}

	for _, item := range items {
		if item.value != "" {
			_, _ = fmt.Fprintf(args.out, "%s: %s\n", item.key, item.value)
		}
	}
}
