package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/drivetap-org/drivetap/drive"
	"github.com/drivetap-org/drivetap/manifest"
	"github.com/drivetap-org/drivetap/tap"
	"github.com/drivetap-org/drivetap/utils"
)

func newDrive() *drive.Drive {
	return utils.NewDrive(utils.AuthArgs{
		ClientId:       authFlags.clientId,
		ClientSecret:   authFlags.clientSecret,
		RefreshToken:   authFlags.refreshToken,
		AccessToken:    authFlags.accessToken,
		ServiceAccount: authFlags.serviceAccount,
		ConfigDir:      authFlags.configDir,
	})
}

func newDriveFromConfig(cfg *tap.Config) *drive.Drive {
	return utils.NewDrive(utils.AuthArgs{
		ClientId:     cfg.ClientId,
		ClientSecret: cfg.ClientSecret,
		RefreshToken: cfg.RefreshToken,
		AccessToken:  cfg.AccessToken,
		ConfigDir:    authFlags.configDir,
	})
}

func configDir() string {
	if dir := os.Getenv(utils.ConfigDirEnv); dir != "" {
		return dir
	}
	if authFlags.configDir != "" {
		return authFlags.configDir
	}
	return utils.GetDefaultConfigDir()
}

func progressWriter(discard bool) io.Writer {
	if discard {
		return ioutil.Discard
	}
	return os.Stderr
}

func durationInSeconds(seconds int64) time.Duration {
	return time.Second * time.Duration(seconds)
}

// driveForSync resolves the remote client, root ids and target directory for
// a sync run. When a connector config is given its credentials are used, so
// a batch invocation never falls back to the interactive token prompt.
func driveForSync(configPath string, args []string, target string, targetSet bool) (*drive.Drive, []string, string, error) {
	if configPath == "" {
		return newDrive(), args, target, nil
	}

	cfg, err := tap.LoadConfig(configPath)
	if err != nil {
		return nil, nil, "", err
	}

	rootIds := args
	if len(rootIds) == 0 {
		rootIds, err = cfg.RootIds()
		if err != nil {
			return nil, nil, "", err
		}
	}

	if !targetSet && cfg.TargetDir != "" {
		target = cfg.TargetDir
	}

	return newDriveFromConfig(cfg), rootIds, target, nil
}

func newSyncCommand() *cobra.Command {
	var (
		configPath string
		target     string
		timeout    int64
		noProgress bool
		jsonOut    bool
		full       bool
	)

	cmd := &cobra.Command{
		Use:   "sync [rootId]...",
		Short: "Mirror remote folder trees to a local directory",
		Run: func(cmd *cobra.Command, args []string) {
			g, rootIds, syncTarget, err := driveForSync(configPath, args, target, cmd.Flags().Changed("target"))
			utils.CheckErr(err)
			target = syncTarget

			if len(rootIds) == 0 {
				utils.ExitF("sync needs root ids, either as arguments or via --config")
			}

			var comparer drive.FileComparer = noComparer{}
			if !full {
				comparer = NewWatermarkComparer(utils.ConfigFilePath(configDir(), utils.DefaultWatermarkFile))
			}

			err = g.Sync(drive.SyncArgs{
				Out:      os.Stdout,
				Progress: progressWriter(noProgress),
				RootIds:  rootIds,
				Path:     target,
				Timeout:  durationInSeconds(timeout),
				Comparer: comparer,
				JsonOut:  jsonOut,
			})
			utils.CheckErr(err)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "connector config file to take credentials and roots from")
	cmd.Flags().StringVar(&target, "target", ".", "local directory to mirror into")
	cmd.Flags().Int64Var(&timeout, "timeout", utils.DefaultTimeout, "idle transfer timeout in seconds, 0 to disable")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "hide progress")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "json output")
	cmd.Flags().BoolVar(&full, "full", false, "ignore watermarks and fetch everything")

	return cmd
}

func newExtractCommand() *cobra.Command {
	var (
		configPath string
		statePath  string
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Run the connector: emit SCHEMA, RECORD and STATE messages on stdout",
		Run: func(cmd *cobra.Command, args []string) {
			lg, err := zap.NewProduction()
			utils.CheckErr(err)
			defer lg.Sync()

			cfg, err := tap.LoadConfig(configPath)
			utils.CheckErr(err)

			state, err := tap.LoadState(statePath)
			utils.CheckErr(err)

			t := tap.New(tap.TapArgs{
				Config:    cfg,
				State:     state,
				StatePath: statePath,
				Source:    newDriveFromConfig(cfg),
				Logger:    lg,
			})

			utils.CheckErr(t.Run(os.Stdout))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file")
	cmd.Flags().StringVarP(&statePath, "state", "s", "", "state file")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func newDiscoverCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Print the stream catalog",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := tap.LoadConfig(configPath)
			utils.CheckErr(err)

			utils.CheckErr(tap.Discover(cfg).WriteTo(os.Stdout))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func newListCommand() *cobra.Command {
	var (
		recursive   bool
		query       string
		maxFiles    int64
		nameWidth   int64
		pathWidth   int64
		skipHeader  bool
		sizeInBytes bool
		jsonOut     bool
	)

	cmd := &cobra.Command{
		Use:   "ls [folderId]",
		Short: "List files, optionally restricted to a folder",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if recursive {
				if len(args) == 0 {
					utils.ExitF("ls -r needs a folder id")
				}
				err := newDrive().ListRecursive(drive.ListRecursiveArgs{
					Out:         os.Stdout,
					RootId:      args[0],
					SkipHeader:  skipHeader,
					PathWidth:   pathWidth,
					SizeInBytes: sizeInBytes,
					JsonOut:     jsonOut,
				})
				utils.CheckErr(err)
				return
			}

			if len(args) == 1 {
				query = fmt.Sprintf("'%s' in parents and trashed = false", args[0])
			}

			err := newDrive().List(drive.ListFilesArgs{
				Out:         os.Stdout,
				MaxFiles:    maxFiles,
				NameWidth:   nameWidth,
				Query:       query,
				SkipHeader:  skipHeader,
				SizeInBytes: sizeInBytes,
				JsonOut:     jsonOut,
			})
			utils.CheckErr(err)
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "list the whole folder tree")
	cmd.Flags().StringVar(&query, "query", utils.DefaultQuery, "remote query")
	cmd.Flags().Int64Var(&maxFiles, "max", utils.DefaultMaxFiles, "max files to list")
	cmd.Flags().Int64Var(&nameWidth, "name-width", utils.DefaultNameWidth, "truncate names longer than this, 0 for no limit")
	cmd.Flags().Int64Var(&pathWidth, "path-width", utils.DefaultPathWidth, "truncate paths longer than this, 0 for no limit")
	cmd.Flags().BoolVar(&skipHeader, "skip-header", false, "skip the column header")
	cmd.Flags().BoolVar(&sizeInBytes, "bytes", false, "size in raw bytes")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "json output")

	return cmd
}

func newInfoCommand() *cobra.Command {
	var (
		sizeInBytes bool
		jsonOut     bool
	)

	cmd := &cobra.Command{
		Use:   "info <fileId>",
		Short: "Show file metadata",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			err := newDrive().Info(drive.FileInfoArgs{
				Out:         os.Stdout,
				Id:          args[0],
				SizeInBytes: sizeInBytes,
				JsonOut:     jsonOut,
			})
			utils.CheckErr(err)
		},
	}

	cmd.Flags().BoolVar(&sizeInBytes, "bytes", false, "size in raw bytes")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "json output")

	return cmd
}

func newExportCommand() *cobra.Command {
	var (
		mime    string
		force   bool
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "export <fileId>",
		Short: "Export a Google document to a regular file format",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			err := newDrive().Export(drive.ExportArgs{
				Out:     os.Stdout,
				Id:      args[0],
				Mime:    mime,
				Force:   force,
				JsonOut: jsonOut,
			})
			utils.CheckErr(err)
		},
	}

	cmd.Flags().StringVar(&mime, "mime", "", "export mime type, overrides the default for the document type")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "json output")

	return cmd
}

func newDownloadCommand() *cobra.Command {
	var (
		path       string
		timeout    int64
		noProgress bool
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "download <fileId>",
		Short: "Download a single file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			err := newDrive().Download(drive.DownloadArgs{
				Out:      os.Stdout,
				Progress: progressWriter(noProgress),
				Id:       args[0],
				Path:     path,
				Timeout:  durationInSeconds(timeout),
				JsonOut:  jsonOut,
			})
			utils.CheckErr(err)
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "download directory")
	cmd.Flags().Int64Var(&timeout, "timeout", utils.DefaultTimeout, "idle transfer timeout in seconds, 0 to disable")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "hide progress")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "json output")

	return cmd
}

func newManifestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Verify and apply declarative file manifests",
	}

	var manifestFile string

	apply := &cobra.Command{
		Use:   "apply",
		Short: "Download every manifest entry that is missing or fails its checksum",
		Run: func(cmd *cobra.Command, args []string) {
			m, err := manifest.Load(manifestFile, newDrive())
			utils.CheckErr(err)
			utils.CheckErr(m.Apply(os.Stdout, os.Stderr))
		},
	}
	apply.Flags().StringVarP(&manifestFile, "file", "f", "", "manifest file")
	_ = apply.MarkFlagRequired("file")

	gen := &cobra.Command{
		Use:   "gen <dir>",
		Short: "Scaffold a manifest from a local directory",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			utils.CheckErr(manifest.Generate(args[0], os.Stdout))
		},
	}

	cmd.AddCommand(apply, gen)
	return cmd
}
