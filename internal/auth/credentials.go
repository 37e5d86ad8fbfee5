// Package auth resolves the Earth Engine service-account credential and
// exchanges it for a scoped OAuth2 session. The credential is read from a
// mounted secrets file or, failing that, from the GEE_JSON_KEY environment
// variable; a missing or unparseable credential is a terminal configuration
// error, not something to retry.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/couchcryptid/sea-level-dashboard/internal/config"
)

// Capability scopes requested for the Earth Engine session.
const (
	ScopeCloudPlatform = "https://www.googleapis.com/auth/cloud-platform"
	ScopeEarthEngine   = "https://www.googleapis.com/auth/earthengine"
)

// EnvJSONKey holds the JSON-encoded service-account blob when no secrets
// file is mounted.
const EnvJSONKey = "GEE_JSON_KEY"

// ErrNoCredentials indicates that neither credential source was present.
var ErrNoCredentials = errors.New("no Earth Engine credentials: mount the gcp_service_account secret or set " + EnvJSONKey)

// Session is an authenticated Earth Engine session. HTTPClient injects a
// bearer token into every request and refreshes it as needed.
type Session struct {
	ProjectID   string
	ClientEmail string
	HTTPClient  *http.Client
	TokenSource oauth2.TokenSource
}

// Authenticator resolves credentials at most once per process and caches
// the outcome; every caller after the first observes the same session or
// the same error, no matter how many times the page re-renders.
type Authenticator struct {
	cfg *config.Config

	once    sync.Once
	session *Session
	err     error
}

// NewAuthenticator creates an Authenticator. No credential source is
// touched until the first Session call.
func NewAuthenticator(cfg *config.Config) *Authenticator {
	return &Authenticator{cfg: cfg}
}

// Session returns the cached Earth Engine session, resolving credentials on
// first use.
func (a *Authenticator) Session(ctx context.Context) (*Session, error) {
	a.once.Do(func() {
		a.session, a.err = newSession(ctx, a.cfg)
	})
	return a.session, a.err
}

func newSession(ctx context.Context, cfg *config.Config) (*Session, error) {
	blob, source, err := readCredentials(cfg)
	if err != nil {
		return nil, err
	}

	var info struct {
		ProjectID   string `json:"project_id"`
		ClientEmail string `json:"client_email"`
	}
	if err := json.Unmarshal(blob, &info); err != nil {
		return nil, fmt.Errorf("parse service account from %s: %w", source, err)
	}
	if info.ProjectID == "" {
		return nil, fmt.Errorf("service account from %s has no project_id", source)
	}

	jwtCfg, err := google.JWTConfigFromJSON(blob, ScopeCloudPlatform, ScopeEarthEngine)
	if err != nil {
		return nil, fmt.Errorf("build scoped credentials from %s: %w", source, err)
	}

	ts := jwtCfg.TokenSource(ctx)
	return &Session{
		ProjectID:   info.ProjectID,
		ClientEmail: info.ClientEmail,
		HTTPClient:  oauth2.NewClient(ctx, ts),
		TokenSource: ts,
	}, nil
}

// readCredentials tries the mounted secrets file first, then the
// environment variable. Returns the blob and a label for error messages.
func readCredentials(cfg *config.Config) ([]byte, string, error) {
	if cfg.CredentialsFile != "" {
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err == nil {
			return data, cfg.CredentialsFile, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("read credentials file: %w", err)
		}
	}

	if v := os.Getenv(EnvJSONKey); v != "" {
		return []byte(v), "env:" + EnvJSONKey, nil
	}

	return nil, "", ErrNoCredentials
}
