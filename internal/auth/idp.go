package auth

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// IDPClient exchanges credentials at a hosted identity provider's token
// endpoint. Responses are passed through verbatim: the upstream status code
// and body reach the caller unmodified, success or not, with no local retry.
type IDPClient struct {
	Domain       string
	ClientID     string
	ClientSecret string
	Scope        string
	RedirectURI  string

	HTTPClient *http.Client
}

// TokenResponse carries the provider's raw reply.
type TokenResponse struct {
	Status      int
	ContentType string
	Body        []byte
}

func (c *IDPClient) Configured() bool {
	return c.Domain != "" && c.ClientID != "" && c.ClientSecret != ""
}

// ClientCredentials performs the service-to-service grant.
func (c *IDPClient) ClientCredentials(ctx context.Context) (*TokenResponse, error) {
	form := url.Values{
		"grant_type": {"client_credentials"},
		"scope":      {c.Scope},
	}
	return c.post(ctx, form)
}

// ExchangeCode trades a previously obtained authorization code for tokens.
func (c *IDPClient) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	form := url.Values{
		"grant_type":   {"authorization_code"},
		"code":         {code},
		"redirect_uri": {c.RedirectURI},
	}
	return c.post(ctx, form)
}

func (c *IDPClient) post(ctx context.Context, form url.Values) (*TokenResponse, error) {
	endpoint := strings.TrimSuffix(c.Domain, "/") + "/oauth2/token"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.ClientID, c.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func (c *IDPClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return defaultIDPHTTPClient
}

var defaultIDPHTTPClient = &http.Client{
	Transport: &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,
		MaxIdleConns:          200,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	},
}
