package utils

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/drivetap-org/drivetap/auth"
	"github.com/drivetap-org/drivetap/drive"
)

// AuthArgs selects how the remote client is authorized. Exactly one of
// refresh token, access token, service account or the cached token file
// is used, in that order.
type AuthArgs struct {
	ClientId       string
	ClientSecret   string
	RefreshToken   string
	AccessToken    string
	ServiceAccount string
	ConfigDir      string
}

func NewDrive(args AuthArgs) *drive.Drive {
	oauth, err := getOauthClient(args)
	if err != nil {
		ExitF("Failed getting oauth client: %s", err.Error())
	}

	client, err := drive.New(oauth)
	if err != nil {
		ExitF("Failed getting drive: %s", err.Error())
	}

	return client
}

func getOauthClient(args AuthArgs) (*http.Client, error) {
	// A refresh token outranks an access token when both are configured
	if args.RefreshToken != "" {
		return auth.NewRefreshTokenClient(args.ClientId, args.ClientSecret, args.RefreshToken), nil
	}

	if args.AccessToken != "" {
		return auth.NewAccessTokenClient(args.ClientId, args.ClientSecret, args.AccessToken), nil
	}

	configDir := getConfigDir(args.ConfigDir)

	if args.ServiceAccount != "" {
		serviceAccountPath := ConfigFilePath(configDir, args.ServiceAccount)
		return auth.NewServiceAccountClient(serviceAccountPath)
	}

	tokenPath := ConfigFilePath(configDir, TokenFilename)
	return auth.NewFileSourceClient(args.ClientId, args.ClientSecret, tokenPath, authCodePrompt)
}

func GetDefaultConfigDir() string {
	return filepath.Join(Homedir(), ".drivetap")
}

func ConfigFilePath(basePath, name string) string {
	return filepath.Join(basePath, name)
}

func Homedir() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("APPDATA")
	}
	return os.Getenv("HOME")
}

func ExitF(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Println("")
	os.Exit(1)
}

func CheckErr(err error) {
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// WriteJson writes data atomically, temp file then rename.
func WriteJson(path string, data interface{}) error {
	tmpFile := path + ".tmp"
	f, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	err = json.NewEncoder(f).Encode(data)
	f.Close()
	if err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, path)
}

func Md5sum(path string) string {
	h := md5.New()
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	io.Copy(h, f)
	return fmt.Sprintf("%x", h.Sum(nil))
}

func getConfigDir(flagDir string) string {
	// Use dir from environment var if present
	if os.Getenv(ConfigDirEnv) != "" {
		return os.Getenv(ConfigDirEnv)
	}
	if flagDir != "" {
		return flagDir
	}
	return GetDefaultConfigDir()
}

func authCodePrompt(url string) func() string {
	return func() string {
		fmt.Println("Authentication needed")
		fmt.Println("Go to the following url in your browser:")
		fmt.Printf("%s\n\n", url)
		fmt.Print("Enter verification code: ")

		var code string
		if _, err := fmt.Scan(&code); err != nil {
			fmt.Printf("Failed reading code: %s", err.Error())
		}
		return code
	}
}
