package utils

import "testing"

// Configs may carry both a refresh and an access token; the refresh token
// wins and the process must not die over the combination.
func TestGetOauthClientPrefersRefreshToken(t *testing.T) {
	client, err := getOauthClient(AuthArgs{
		ClientId:     "client",
		ClientSecret: "secret",
		RefreshToken: "refresh",
		AccessToken:  "access",
	})
	if err != nil {
		t.Fatal(err)
	}
	if client == nil {
		t.Fatal("expected an oauth client")
	}
}

func TestGetOauthClientAccessTokenOnly(t *testing.T) {
	client, err := getOauthClient(AuthArgs{
		ClientId:     "client",
		ClientSecret: "secret",
		AccessToken:  "access",
	})
	if err != nil {
		t.Fatal(err)
	}
	if client == nil {
		t.Fatal("expected an oauth client")
	}
}
