package oauth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Values from the Twitter "Creating a signature" guide.
var (
	twitterCreds = Credentials{
		ConsumerKey:    "xvz1evFS4wEEPTGEFPHBog",
		ConsumerSecret: "kAcSOqF21Fu85e7zjz7ZN2U4ZRhfV3WpwPAoE3Z7kBw",
		Token:          "370773112-GmHxMAgYyLbNEtIKZeRNFsMKPR9EyMZeS9weJAEb",
		TokenSecret:    "LswwdoUaIvS8ltyTt5jkRh4J50vUPVVHtR2YPi5kE",
	}
	twitterParams = map[string]string{
		"status":           "Hello Ladies + Gentlemen, a signed OAuth request!",
		"include_entities": "true",
	}
	twitterURL = "https://api.twitter.com/1.1/statuses/update.json?include_entities=true"
)

func fixedSigner() *Signer {
	return &Signer{
		Nonce: func() string { return "kYjzVBB8Y0ZFabxSWbWovY3uYSQ2pTgmZeNu2VS4cg" },
		Now:   func() time.Time { return time.Unix(1318622958, 0) },
	}
}

func TestPercentEncode(t *testing.T) {
	tts := map[string]struct {
		input    string
		expected string
	}{
		"unreserved":  {input: "abcXYZ019-._~", expected: "abcXYZ019-._~"},
		"space":       {input: "a b", expected: "a%20b"},
		"plus":        {input: "a+b", expected: "a%2Bb"},
		"extra chars": {input: "!'()*", expected: "%21%27%28%29%2A"},
		"url":         {input: "https://x.com/a?b=c", expected: "https%3A%2F%2Fx.com%2Fa%3Fb%3Dc"},
		"utf8":        {input: "é", expected: "%C3%A9"},
	}

	for name, tt := range tts {
		assert.Equal(t, tt.expected, PercentEncode(tt.input), name)
	}
}

func TestBaseString(t *testing.T) {
	params := map[string]string{
		"oauth_consumer_key":     twitterCreds.ConsumerKey,
		"oauth_nonce":            "kYjzVBB8Y0ZFabxSWbWovY3uYSQ2pTgmZeNu2VS4cg",
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        "1318622958",
		"oauth_token":            twitterCreds.Token,
		"oauth_version":          "1.0",
	}
	for k, v := range twitterParams {
		params[k] = v
	}

	expected := "POST&https%3A%2F%2Fapi.twitter.com%2F1.1%2Fstatuses%2Fupdate.json&" +
		"include_entities%3Dtrue%26oauth_consumer_key%3Dxvz1evFS4wEEPTGEFPHBog%26" +
		"oauth_nonce%3DkYjzVBB8Y0ZFabxSWbWovY3uYSQ2pTgmZeNu2VS4cg%26oauth_signature_method%3DHMAC-SHA1%26" +
		"oauth_timestamp%3D1318622958%26oauth_token%3D370773112-GmHxMAgYyLbNEtIKZeRNFsMKPR9EyMZeS9weJAEb%26" +
		"oauth_version%3D1.0%26status%3DHello%2520Ladies%2520%252B%2520Gentlemen%252C%2520a%2520signed%2520OAuth%2520request%2521"
	assert.Equal(t, expected, BaseString("post", twitterURL, params))
}

func TestSigningKey(t *testing.T) {
	assert.Equal(t, "kAcSOqF21Fu85e7zjz7ZN2U4ZRhfV3WpwPAoE3Z7kBw&LswwdoUaIvS8ltyTt5jkRh4J50vUPVVHtR2YPi5kE",
		SigningKey(twitterCreds.ConsumerSecret, twitterCreds.TokenSecret))
	assert.Equal(t, "secret&", SigningKey("secret", ""))
}

func TestSigner_Sign(t *testing.T) {
	header := fixedSigner().Sign("POST", twitterURL, twitterParams, twitterCreds)

	expected := `OAuth oauth_consumer_key="xvz1evFS4wEEPTGEFPHBog", ` +
		`oauth_nonce="kYjzVBB8Y0ZFabxSWbWovY3uYSQ2pTgmZeNu2VS4cg", ` +
		`oauth_signature="tnnArxj06cWHq44gCs1OSKk%2FjLY%3D", ` +
		`oauth_signature_method="HMAC-SHA1", ` +
		`oauth_timestamp="1318622958", ` +
		`oauth_token="370773112-GmHxMAgYyLbNEtIKZeRNFsMKPR9EyMZeS9weJAEb", ` +
		`oauth_version="1.0"`
	assert.Equal(t, expected, header)
}

func TestSigner_Sign_Deterministic(t *testing.T) {
	s := fixedSigner()

	h1 := s.Sign("POST", twitterURL, twitterParams, twitterCreds)
	h2 := s.Sign("POST", twitterURL, twitterParams, twitterCreds)
	assert.Equal(t, h1, h2, "same inputs give the same header")

	changed := map[string]string{"status": "Hello", "include_entities": "true"}
	h3 := s.Sign("POST", twitterURL, changed, twitterCreds)
	assert.NotEqual(t, h1, h3, "changing a parameter changes the signature")

	h4 := s.Sign("GET", twitterURL, twitterParams, twitterCreds)
	assert.NotEqual(t, h1, h4, "changing the method changes the signature")
}

func TestSigner_Sign_WithoutToken(t *testing.T) {
	creds := Credentials{ConsumerKey: "key", ConsumerSecret: "secret"}
	header := fixedSigner().Sign("POST", "https://www.instapaper.com/api/1/oauth/access_token", map[string]string{
		"x_auth_username": "me@example.com",
		"x_auth_password": "pwd",
		"x_auth_mode":     "client_auth",
	}, creds)

	assert.True(t, strings.HasPrefix(header, "OAuth "))
	assert.NotContains(t, header, "oauth_token=", "no token is sent before authentication")
	assert.NotContains(t, header, "x_auth", "body parameters are signed but not sent in the header")
	assert.Contains(t, header, `oauth_consumer_key="key"`)
}

func TestSigner_Sign_FreshNonce(t *testing.T) {
	s := &Signer{}
	creds := Credentials{ConsumerKey: "key", ConsumerSecret: "secret"}

	h1 := s.Sign("POST", "https://example.com", nil, creds)
	h2 := s.Sign("POST", "https://example.com", nil, creds)
	assert.NotEqual(t, h1, h2, "nonce is regenerated for every request")
}

func TestParseTokenResponse(t *testing.T) {
	tts := map[string]struct {
		body     string
		expected Tokens
		ok       bool
	}{
		"valid": {
			body:     "oauth_token=abc&oauth_token_secret=def",
			expected: Tokens{Token: "abc", Secret: "def"},
			ok:       true,
		},
		"encoded": {
			body:     "oauth_token_secret=d%2Bf&oauth_token=a%20c\n",
			expected: Tokens{Token: "a c", Secret: "d+f"},
			ok:       true,
		},
		"missing secret": {
			body: "oauth_token=abc",
		},
		"empty token": {
			body: "oauth_token=&oauth_token_secret=def",
		},
		"garbage": {
			body: "<html>nope</html>",
		},
	}

	for name, tt := range tts {
		tokens, ok := ParseTokenResponse(tt.body)
		assert.Equal(t, tt.ok, ok, name)
		assert.Equal(t, tt.expected, tokens, name)
	}
}
