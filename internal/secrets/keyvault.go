package secrets

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

type secretGetter interface {
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

// KeyVault reads secrets from an Azure Key Vault, keeping values in memory
// for the configured TTL.
type KeyVault struct {
	client secretGetter
	cache  *cache.Cache // nil when caching is off
	logger *zap.Logger
}

// OpenKeyVault authenticates with DefaultAzureCredential (environment,
// managed identity or Azure CLI) against https://<name>.vault.azure.net/.
func OpenKeyVault(name string, ttl time.Duration, logger *zap.Logger) (*KeyVault, error) {
	if name == "" {
		return nil, fmt.Errorf("key vault name is required")
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("azure credential: %w", err)
	}

	url := fmt.Sprintf("https://%s.vault.azure.net/", name)
	client, err := azsecrets.NewClient(url, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("key vault client: %w", err)
	}

	logger.Info("Key Vault opened", zap.String("vault_url", url), zap.Duration("cache_ttl", ttl))
	return newKeyVault(client, ttl, logger), nil
}

func newKeyVault(client secretGetter, ttl time.Duration, logger *zap.Logger) *KeyVault {
	kv := &KeyVault{client: client, logger: logger}
	if ttl > 0 {
		kv.cache = cache.New(ttl, 2*ttl)
	}
	return kv
}

// Get returns the latest version of the named secret
func (kv *KeyVault) Get(ctx context.Context, name string) (string, error) {
	if kv.cache != nil {
		if v, ok := kv.cache.Get(name); ok {
			return v.(string), nil
		}
	}

	resp, err := kv.client.GetSecret(ctx, name, "", nil)
	if err != nil {
		kv.logger.Error("Key Vault lookup failed", zap.String("secret", name), zap.Error(err))
		return "", fmt.Errorf("get secret %s: %w", name, err)
	}
	if resp.Value == nil || *resp.Value == "" {
		return "", fmt.Errorf("%s: %w", name, ErrNotSet)
	}

	if kv.cache != nil {
		kv.cache.SetDefault(name, *resp.Value)
	}
	return *resp.Value, nil
}

// Forget drops every cached value
func (kv *KeyVault) Forget() {
	if kv.cache != nil {
		kv.cache.Flush()
	}
}
