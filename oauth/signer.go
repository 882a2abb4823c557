// Package oauth signs requests with OAuth 1.0a, HMAC-SHA1 flavour.
package oauth

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	SignatureMethod = "HMAC-SHA1"
	Version         = "1.0"
)

// Credentials identifies the consumer and, once authenticated, the user.
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
	Token          string
	TokenSecret    string
}

// Signer builds Authorization headers. The zero value is ready to use;
// Nonce and Now can be replaced to get deterministic signatures.
type Signer struct {
	Nonce func() string
	Now   func() time.Time
}

func (s *Signer) nonce() string {
	if s.Nonce != nil {
		return s.Nonce()
	}
	return strings.Replace(uuid.New().String(), "-", "", -1)
}

func (s *Signer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Sign returns the value of the Authorization header for a request with the
// given method, url and form parameters. A new nonce and timestamp are used on
// every call.
func (s *Signer) Sign(method, rawURL string, params map[string]string, creds Credentials) string {
	oauthParams := map[string]string{
		"oauth_consumer_key":     creds.ConsumerKey,
		"oauth_nonce":            s.nonce(),
		"oauth_signature_method": SignatureMethod,
		"oauth_timestamp":        strconv.FormatInt(s.now().Unix(), 10),
		"oauth_version":          Version,
	}
	if creds.Token != "" {
		oauthParams["oauth_token"] = creds.Token
	}

	all := make(map[string]string, len(params)+len(oauthParams))
	for k, v := range params {
		all[k] = v
	}
	for k, v := range oauthParams {
		all[k] = v
	}

	base := BaseString(method, rawURL, all)
	oauthParams["oauth_signature"] = signature(base, SigningKey(creds.ConsumerSecret, creds.TokenSecret))

	keys := make([]string, 0, len(oauthParams))
	for k, v := range oauthParams {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf(`%s="%s"`, PercentEncode(k), PercentEncode(oauthParams[k]))
	}
	return "OAuth " + strings.Join(pairs, ", ")
}

// BaseString is the signature base string of RFC 5849, section 3.4.1.
func BaseString(method, rawURL string, params map[string]string) string {
	if i := strings.Index(rawURL, "?"); i >= 0 {
		rawURL = rawURL[:i]
	}

	return strings.Join([]string{
		strings.ToUpper(method),
		PercentEncode(rawURL),
		PercentEncode(ParameterString(params)),
	}, "&")
}

// ParameterString encodes and sorts params, and joins them as a query string.
func ParameterString(params map[string]string) string {
	type pair struct{ k, v string }

	pairs := make([]pair, 0, len(params))
	for k, v := range params {
		pairs = append(pairs, pair{k: PercentEncode(k), v: PercentEncode(v)})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].k == pairs[j].k {
			return pairs[i].v < pairs[j].v
		}
		return pairs[i].k < pairs[j].k
	})

	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.k + "=" + p.v
	}
	return strings.Join(parts, "&")
}

func SigningKey(consumerSecret, tokenSecret string) string {
	return PercentEncode(consumerSecret) + "&" + PercentEncode(tokenSecret)
}

func signature(base, key string) string {
	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(base))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// PercentEncode escapes s as required by RFC 3986: everything but
// ALPHA / DIGIT / "-" / "." / "_" / "~" is escaped, using upper case hex.
func PercentEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}
