package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// Backend names where credentials are read from
type Backend string

const (
	BackendEnv      Backend = "environment"
	BackendKeyVault Backend = "vault"
	// BackendAuto picks Key Vault for staging and production
	BackendAuto Backend = "auto"
)

// ErrNotSet is returned when a credential has no value in the selected backend
var ErrNotSet = errors.New("credential not set")

// BackendFor resolves BackendAuto against the deployment environment
func BackendFor(b Backend, environment string) Backend {
	if b != BackendAuto {
		return b
	}
	if environment == "staging" || environment == "production" {
		return BackendKeyVault
	}
	return BackendEnv
}

// Options configures a Resolver
type Options struct {
	Backend     Backend
	Environment string
	VaultName   string
	CacheTTL    time.Duration // zero disables caching
}

// Resolver looks up billing credentials. An explicitly set environment
// variable always wins over the backend so operators can pin a value during
// an incident.
type Resolver struct {
	backend Backend
	vault   *KeyVault
	logger  *zap.Logger
}

func NewResolver(opts Options, logger *zap.Logger) (*Resolver, error) {
	r := &Resolver{backend: BackendFor(opts.Backend, opts.Environment), logger: logger}

	if r.backend == BackendKeyVault {
		vault, err := OpenKeyVault(opts.VaultName, opts.CacheTTL, logger)
		if err != nil {
			return nil, fmt.Errorf("open key vault: %w", err)
		}
		r.vault = vault
	}

	logger.Info("Credential resolver ready",
		zap.String("backend", string(r.backend)),
		zap.String("environment", opts.Environment),
	)
	return r, nil
}

// Backend reports which backend the resolver reads from
func (r *Resolver) Backend() Backend {
	return r.backend
}

// Lookup returns the value of envName when set, otherwise the named secret
// from the backend. For the environment backend the secret name is read as a
// variable name.
func (r *Resolver) Lookup(ctx context.Context, secretName, envName string) (string, error) {
	if v := os.Getenv(envName); v != "" {
		r.logger.Debug("Credential taken from environment", zap.String("env", envName))
		return v, nil
	}

	switch r.backend {
	case BackendEnv:
		if v := os.Getenv(secretName); v != "" {
			return v, nil
		}
		return "", fmt.Errorf("%s: %w", secretName, ErrNotSet)
	case BackendKeyVault:
		return r.vault.Get(ctx, secretName)
	default:
		return "", fmt.Errorf("unknown credential backend %q", r.backend)
	}
}
