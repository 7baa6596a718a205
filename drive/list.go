package drive

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

type ListFilesArgs struct {
	Out         io.Writer
	MaxFiles    int64
	NameWidth   int64
	Query       string
	SortOrder   string
	SkipHeader  bool
	SizeInBytes bool
	JsonOut     bool
}

func (g *Drive) List(args ListFilesArgs) error {
	listArgs := listAllFilesArgs{
		query:     args.Query,
		fields:    []googleapi.Field{"nextPageToken", "files(id,name,md5Checksum,mimeType,size,createdTime,modifiedTime)"},
		sortOrder: args.SortOrder,
		maxFiles:  args.MaxFiles,
	}
	files, err := g.listAllFiles(listArgs)
	if err != nil {
		return fmt.Errorf("failed to list files: %s", err)
	}

	if args.JsonOut {
		jb, err := json.Marshal(files)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(args.Out, string(jb))
		return nil
	}

	printFileList(printFileListArgs{
		out:         args.Out,
		files:       files,
		nameWidth:   int(args.NameWidth),
		skipHeader:  args.SkipHeader,
		sizeInBytes: args.SizeInBytes,
	})

	return nil
}

type listAllFilesArgs struct {
	query     string
	fields    []googleapi.Field
	sortOrder string
	maxFiles  int64
}

// listAllFiles consumes the opaque page token returned by the remote
// listing until it is exhausted.
func (g *Drive) listAllFiles(args listAllFilesArgs) ([]*drive.File, error) {
	var files []*drive.File
	var pageToken string

	for {
		call := g.service.Files.List().Q(args.query).Fields(args.fields...)

		if args.sortOrder != "" {
			call = call.OrderBy(args.sortOrder)
		}

		if args.maxFiles > 0 {
			call = call.PageSize(args.maxFiles)
		}

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		fl, err := call.Do()
		if err != nil {
			return nil, &RemoteError{Op: "list", Id: args.query, Err: err}
		}

		files = append(files, fl.Files...)

		if args.maxFiles > 0 && int64(len(files)) >= args.maxFiles {
			return files[:args.maxFiles], nil
		}

		pageToken = fl.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return files, nil
}

// listChildren returns the immediate children of a folder as nodes,
// following the page token loop until exhausted.
func (g *Drive) listChildren(folderId string) ([]*Node, error) {
	listArgs := listAllFilesArgs{
		query:  fmt.Sprintf("'%s' in parents and trashed = false", folderId),
		fields: []googleapi.Field{"nextPageToken", "files(id,name,mimeType,size,parents,modifiedTime)"},
	}

	files, err := g.listAllFiles(listArgs)
	if err != nil {
		return nil, err
	}

	nodes := make([]*Node, 0, len(files))
	for _, f := range files {
		nodes = append(nodes, newNode(f))
	}

	return nodes, nil
}

type printFileListArgs struct {
	out         io.Writer
	files       []*drive.File
	nameWidth   int
	skipHeader  bool
	sizeInBytes bool
}

func printFileList(args printFileListArgs) {
	w := new(tabwriter.Writer)
	w.Init(args.out, 0, 0, 3, ' ', 0)

	if !args.skipHeader {
		_, _ = fmt.Fprintln(w, "Id\tName\tType\tSize\tCreated")
	}

	for _, f := range args.files {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			f.Id,
			truncateString(f.Name, args.nameWidth),
			filetype(f),
			formatSize(f.Size, args.sizeInBytes),
			formatDatetime(f.CreatedTime),
		)
	}

	_ = w.Flush()
}

func filetype(f *drive.File) string {
	if isDir(f) {
		return "dir"
	} else if isBinary(f) {
		return "bin"
	}
	return "doc"
}

func isDir(f *drive.File) bool {
	return f.MimeType == DirectoryMimeType
}

func isBinary(f *drive.File) bool {
	return f.Md5Checksum != ""
}
