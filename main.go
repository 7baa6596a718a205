package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/drivetap-org/drivetap/utils"
)

var authFlags = struct {
	configDir      string
	clientId       string
	clientSecret   string
	refreshToken   string
	accessToken    string
	serviceAccount string
}{}

func main() {
	root := &cobra.Command{
		Use:           utils.Name,
		Short:         "Extract files and tabular records from a Google Drive folder",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&authFlags.configDir, "config-dir", utils.GetDefaultConfigDir(), "application config directory")
	flags.StringVar(&authFlags.clientId, "client-id", "", "oauth client id")
	flags.StringVar(&authFlags.clientSecret, "client-secret", "", "oauth client secret")
	flags.StringVar(&authFlags.refreshToken, "refresh-token", "", "oauth refresh token")
	flags.StringVar(&authFlags.accessToken, "access-token", "", "oauth access token")
	flags.StringVar(&authFlags.serviceAccount, "service-account", "", "service account file name in the config directory")

	root.AddCommand(
		newSyncCommand(),
		newExtractCommand(),
		newDiscoverCommand(),
		newListCommand(),
		newInfoCommand(),
		newExportCommand(),
		newDownloadCommand(),
		newManifestCommand(),
		newVersionCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s: %s\n", utils.Name, utils.Version)
			fmt.Printf("Golang: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
