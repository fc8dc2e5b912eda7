package auth

import (
	"context"
	"fmt"
	"slices"

	"github.com/coreos/go-oidc/v3/oidc"
)

// TokenVerifier is the authentication strategy behind the bearer middleware.
// The local mode checks the HS256 signature against the configured key; the
// delegated mode validates against the identity provider's published keys.
// One of the two is selected at startup by configuration.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*Principal, error)
}

type LocalVerifier struct {
	Secret []byte
}

func (v *LocalVerifier) Verify(_ context.Context, rawToken string) (*Principal, error) {
	claims, err := AccessClaimsFromToken(rawToken, v.Secret)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return &Principal{
		Username: claims.Subject,
		Role:     ParseRole(claims.Role),
	}, nil
}

type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

func NewOIDCVerifier(ctx context.Context, issuerURL, clientID string) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}
	return &OIDCVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

func (v *OIDCVerifier) Verify(ctx context.Context, rawToken string) (*Principal, error) {
	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	var claims struct {
		Username string   `json:"username"`
		Role     string   `json:"role"`
		Groups   []string `json:"cognito:groups"`
	}
	if err := token.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to parse claims: %w", err)
	}

	role := ParseRole(claims.Role)
	if slices.Contains(claims.Groups, RoleAdmin.String()) {
		role = RoleAdmin
	}

	username := claims.Username
	if username == "" {
		username = token.Subject
	}
	return &Principal{Username: username, Role: role}, nil
}
