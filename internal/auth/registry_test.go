package auth

import (
	"context"
	"reflect"
	"testing"

	"sori/internal/domain/models"
)

type stubProvider struct{ name string }

func (p stubProvider) Name() string { return p.name }

func (p stubProvider) AuthorizationURL(state, verifier string) string {
	return "https://idp.test/authorize?state=" + state
}

func (p stubProvider) Exchange(ctx context.Context, code, verifier string) (*models.ProviderTokens, error) {
	return nil, nil
}

func TestLoadProviderDefinitions(t *testing.T) {
	defs, err := LoadProviderDefinitions()
	if err != nil {
		t.Fatalf("LoadProviderDefinitions() error = %v", err)
	}

	var google *ProviderDefinition
	for i := range defs {
		if defs[i].Name == "google" {
			google = &defs[i]
		}
	}
	if google == nil {
		t.Fatal("google definition missing")
	}
	if !reflect.DeepEqual(google.Scopes, []string{"openid", "email", "profile"}) {
		t.Errorf("scopes = %v", google.Scopes)
	}
	if google.AuthParams["access_type"] != "offline" || google.AuthParams["prompt"] != "consent" {
		t.Errorf("auth params = %v", google.AuthParams)
	}
	if google.JWKSURL == "" {
		t.Error("jwks url is empty")
	}
}

func TestParseProviderDefinitionsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing token url",
			yaml: "providers:\n  - name: x\n    auth_url: https://x.test/a\n",
		},
		{
			name: "duplicate name",
			yaml: "providers:\n  - {name: x, auth_url: a, token_url: t}\n  - {name: x, auth_url: a, token_url: t}\n",
		},
		{
			name: "not yaml",
			yaml: "providers: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseProviderDefinitions([]byte(tt.yaml)); err == nil {
				t.Error("parseProviderDefinitions() expected error, got nil")
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(stubProvider{name: "google"}, stubProvider{name: "apple"})

	if _, ok := r.Get("google"); !ok {
		t.Error("Get(google) not found")
	}
	if _, ok := r.Get("unknown"); ok {
		t.Error("Get(unknown) found a provider")
	}
	if got := r.Names(); !reflect.DeepEqual(got, []string{"apple", "google"}) {
		t.Errorf("Names() = %v", got)
	}
}
