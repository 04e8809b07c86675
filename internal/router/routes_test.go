package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_Table(t *testing.T) {
	cases := []struct {
		path   string
		name   string
		lang   string
		params map[string]string
	}{
		{"/en", NameHome, "en", map[string]string{}},
		{"/ar/services", "services", "ar", map[string]string{}},
		{"/en/services/42", "ServiceDetail", "en", map[string]string{"id": "42"}},
		{"/ar/portfolio/3", "PortfolioDetail", "ar", map[string]string{"id": "3"}},
		{"/en/contact", "contact", "en", map[string]string{}},
		{"/en/request", "ServiceRequest", "en", map[string]string{}},
		{"/ar/request/5", "ServiceRequest", "ar", map[string]string{"serviceId": "5"}},
		{"/en/admin/login", NameLogin, "en", map[string]string{}},
		{"/ar/admin", NameDash, "ar", map[string]string{}},
		{"/en/admin/requests/9", "AdminRequestDetail", "en", map[string]string{"id": "9"}},
	}
	for _, tc := range cases {
		got := Resolve(tc.path)
		assert.Equal(t, tc.name, got.Name, "path %s", tc.path)
		assert.Equal(t, tc.lang, got.Lang, "path %s", tc.path)
		assert.Equal(t, tc.params, got.Params, "path %s", tc.path)
	}
}

func TestResolve_QueryIsStrippedButKeptInPath(t *testing.T) {
	got := Resolve("/en/services?category=2")

	assert.Equal(t, "services", got.Name)
	assert.Equal(t, "/en/services?category=2", got.Path, "original target survives for redirect building")
}

func TestResolve_UnrecognizedLanguageDoesNotBind(t *testing.T) {
	for _, path := range []string{"/fr/services", "/es/admin", "/nonsense"} {
		got := Resolve(path)
		assert.Equal(t, NameNotFound, got.Name, "path %s", path)
		assert.Empty(t, got.Lang, "path %s must not carry a language", path)
		assert.False(t, got.Meta.RequiresAuth)
	}
}

func TestResolve_UnknownPathUnderKnownLanguage(t *testing.T) {
	got := Resolve("/en/no/such/page")

	assert.Equal(t, NameNotFound, got.Name)
	assert.Empty(t, got.Lang, "the catch-all carries no language")
}

func TestResolve_RootPath(t *testing.T) {
	got := Resolve("/")

	assert.Equal(t, NameRoot, got.Name)
	assert.Empty(t, got.Lang)
}

func TestResolve_GuardFlags(t *testing.T) {
	assert.Equal(t, Meta{RequiresGuest: true}, Resolve("/en/admin/login").Meta)
	assert.Equal(t, Meta{RequiresAuth: true, RequiresAdmin: true}, Resolve("/en/admin").Meta)
	assert.Equal(t, Meta{}, Resolve("/en/services").Meta, "public routes carry no flags")
}
