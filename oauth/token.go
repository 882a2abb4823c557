package oauth

import (
	"net/url"
	"strings"
)

// Tokens is an access token pair.
type Tokens struct {
	Token  string
	Secret string
}

// ParseTokenResponse reads a form encoded token response. It returns false
// unless both oauth_token and oauth_token_secret are present and non empty.
func ParseTokenResponse(body string) (Tokens, bool) {
	params := make(map[string]string)
	for _, pair := range strings.Split(strings.TrimSpace(body), "&") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 || kv[0] == "" || kv[1] == "" {
			continue
		}

		k, err := url.QueryUnescape(kv[0])
		if err != nil {
			continue
		}
		v, err := url.QueryUnescape(kv[1])
		if err != nil {
			continue
		}
		params[k] = v
	}

	tokens := Tokens{
		Token:  params["oauth_token"],
		Secret: params["oauth_token_secret"],
	}
	if tokens.Token == "" || tokens.Secret == "" {
		return Tokens{}, false
	}
	return tokens, true
}
