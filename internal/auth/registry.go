package auth

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/providers.yaml
var providerFiles embed.FS

// ProviderDefinition is the static description of an OIDC provider
type ProviderDefinition struct {
	Name       string            `yaml:"name"`
	AuthURL    string            `yaml:"auth_url"`
	TokenURL   string            `yaml:"token_url"`
	JWKSURL    string            `yaml:"jwks_url"`
	Issuers    []string          `yaml:"issuers"`
	Scopes     []string          `yaml:"scopes"`
	AuthParams map[string]string `yaml:"auth_params"`
}

type providerFile struct {
	Providers []ProviderDefinition `yaml:"providers"`
}

// LoadProviderDefinitions reads the embedded provider definitions
func LoadProviderDefinitions() ([]ProviderDefinition, error) {
	data, err := providerFiles.ReadFile("config/providers.yaml")
	if err != nil {
		return nil, fmt.Errorf("read provider definitions: %w", err)
	}
	return parseProviderDefinitions(data)
}

func parseProviderDefinitions(data []byte) ([]ProviderDefinition, error) {
	var f providerFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal provider definitions: %w", err)
	}

	seen := make(map[string]bool, len(f.Providers))
	for _, def := range f.Providers {
		if def.Name == "" || def.AuthURL == "" || def.TokenURL == "" {
			return nil, fmt.Errorf("provider %q: name, auth_url and token_url are required", def.Name)
		}
		if seen[def.Name] {
			return nil, fmt.Errorf("provider %q defined twice", def.Name)
		}
		seen[def.Name] = true
	}
	return f.Providers, nil
}

// Registry maps provider names to providers
type Registry struct {
	providers map[string]Provider
	mu        sync.RWMutex
}

// NewRegistry creates a registry holding the given providers
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider)}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// Register adds or replaces a provider under its name
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name()] = p
}

// Get returns the provider for name
func (r *Registry) Get(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	return p, ok
}

// Names lists registered provider names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
