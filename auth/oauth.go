package auth

import (
	"fmt"
	"io/ioutil"
	"net/http"

	"golang.org/x/net/context"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const DriveReadonlyScope = "https://www.googleapis.com/auth/drive.readonly"

func NewRefreshTokenClient(clientId, clientSecret, refreshToken string) *http.Client {
	conf := getOauthConfig(clientId, clientSecret)

	token := &oauth2.Token{
		TokenType:    "Bearer",
		RefreshToken: refreshToken,
		Expiry:       expiredTime(),
	}

	return conf.Client(context.Background(), token)
}

func NewAccessTokenClient(clientId, clientSecret, accessToken string) *http.Client {
	conf := getOauthConfig(clientId, clientSecret)

	token := &oauth2.Token{
		TokenType:   "Bearer",
		AccessToken: accessToken,
	}

	return conf.Client(context.Background(), token)
}

func NewServiceAccountClient(serviceAccountFile string) (*http.Client, error) {
	content, err := ioutil.ReadFile(serviceAccountFile)
	if err != nil {
		return nil, err
	}

	conf, err := google.JWTConfigFromJSON(content, DriveReadonlyScope)
	if err != nil {
		return nil, err
	}

	return conf.Client(context.Background()), nil
}

// NewFileSourceClient returns a client backed by a token file. When no valid
// token is cached the user is sent through the auth-code prompt and the
// resulting token is persisted for the next run.
func NewFileSourceClient(clientId, clientSecret, tokenFile string, authFn func(authUrl string) func() string) (*http.Client, error) {
	conf := getOauthConfig(clientId, clientSecret)

	token, exists, err := ReadToken(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read token: %s", err)
	}

	if !exists {
		authUrl := conf.AuthCodeURL("state", oauth2.AccessTypeOffline)
		authCode := authFn(authUrl)()

		token, err = conf.Exchange(context.Background(), authCode)
		if err != nil {
			return nil, fmt.Errorf("failed to exchange auth code for token: %s", err)
		}

		if err := SaveToken(tokenFile, token); err != nil {
			return nil, fmt.Errorf("failed to save token: %s", err)
		}
	}

	return conf.Client(
		context.Background(),
		token,
	), nil
}

func getOauthConfig(clientId, clientSecret string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientId,
		ClientSecret: clientSecret,
		Scopes:       []string{DriveReadonlyScope},
		RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
		Endpoint:     google.Endpoint,
	}
}
