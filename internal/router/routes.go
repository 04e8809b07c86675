// Package router resolves navigation targets against the site's route
// table and gates them through the navigation guard.
package router

import (
	"strings"

	"github.com/khadamat/webgate/internal/domain"
)

// Meta carries a route's guard flags.
type Meta struct {
	RequiresAuth  bool
	RequiresAdmin bool
	RequiresGuest bool
}

// Route is one entry of the table. Patterns are language-relative;
// ":name" segments bind parameters.
type Route struct {
	Name    string
	Pattern string
	Meta    Meta
}

// Names of routes the guard redirects to.
const (
	NameHome     = "home"
	NameLogin    = "AdminLogin"
	NameDash     = "AdminDashboard"
	NameNotFound = "NotFound"
	NameRoot     = "root"
)

var adminMeta = Meta{RequiresAuth: true, RequiresAdmin: true}

// routes mirrors the client-visible route set. Order matters: first
// match wins.
var routes = []Route{
	{Name: NameHome, Pattern: ""},
	{Name: "services", Pattern: "services"},
	{Name: "ServiceDetail", Pattern: "services/:id"},
	{Name: "portfolio", Pattern: "portfolio"},
	{Name: "PortfolioDetail", Pattern: "portfolio/:id"},
	{Name: "contact", Pattern: "contact"},
	{Name: "ServiceRequest", Pattern: "request"},
	{Name: "ServiceRequest", Pattern: "request/:serviceId"},
	{Name: NameLogin, Pattern: "admin/login", Meta: Meta{RequiresGuest: true}},
	{Name: NameDash, Pattern: "admin", Meta: adminMeta},
	{Name: "AdminServices", Pattern: "admin/services", Meta: adminMeta},
	{Name: "AdminRequests", Pattern: "admin/requests", Meta: adminMeta},
	{Name: "AdminRequestDetail", Pattern: "admin/requests/:id", Meta: adminMeta},
	{Name: "AdminPortfolio", Pattern: "admin/portfolio", Meta: adminMeta},
}

// Intent is one navigation attempt, resolved from a target path. It
// lives only for the duration of guard evaluation.
type Intent struct {
	Path   string // original target, query included
	Lang   string // recognized language segment, or ""
	Name   string
	Params map[string]string
	Meta   Meta
}

// Resolve maps a target path to an Intent. An unrecognized language
// segment is not an error: the whole path simply fails to match and
// falls through to the not-found route, which carries no language and
// no guard flags.
func Resolve(path string) Intent {
	intent := Intent{Path: path, Name: NameNotFound, Params: map[string]string{}}

	clean := path
	if i := strings.IndexByte(clean, '?'); i >= 0 {
		clean = clean[:i]
	}
	clean = strings.Trim(clean, "/")
	if clean == "" {
		intent.Name = NameRoot
		return intent
	}

	segs := strings.Split(clean, "/")
	if !domain.IsSupportedLanguage(segs[0]) {
		return intent
	}
	rest := segs[1:]

	for _, r := range routes {
		params, ok := match(r.Pattern, rest)
		if !ok {
			continue
		}
		// The language segment binds only when the rest of the path
		// matches a route; the catch-all carries no language.
		intent.Lang = segs[0]
		intent.Name = r.Name
		intent.Meta = r.Meta
		intent.Params = params
		return intent
	}
	return intent
}

// match compares pattern segments to path segments, binding ":name"
// parameters.
func match(pattern string, segs []string) (map[string]string, bool) {
	var pat []string
	if pattern != "" {
		pat = strings.Split(pattern, "/")
	}
	if len(pat) != len(segs) {
		return nil, false
	}
	params := map[string]string{}
	for i, p := range pat {
		if strings.HasPrefix(p, ":") {
			params[p[1:]] = segs[i]
			continue
		}
		if p != segs[i] {
			return nil, false
		}
	}
	return params, true
}
