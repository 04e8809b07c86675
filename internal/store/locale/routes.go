package locale

// routePaths maps abstract route names to their language-relative paths.
var routePaths = map[string]string{
	"home":            "",
	"services":        "services",
	"portfolio":       "portfolio",
	"contact":         "contact",
	"ServiceDetail":   "services/:id",
	"PortfolioDetail": "portfolio/:id",
	"ServiceRequest":  "request",
	"admin":           "admin",
	"AdminDashboard":  "admin",
	"AdminServices":   "admin/services",
	"AdminRequests":   "admin/requests",
	"AdminPortfolio":  "admin/portfolio",
}

// LocalizedRoute maps a route name plus parameters to a path prefixed
// with the current language. Pure with respect to its inputs and the
// current language: identical input yields identical output.
func (s *Store) LocalizedRoute(name string, params map[string]string) string {
	base := "/" + s.Language()

	// Parameterized detail routes take an id segment; the request form
	// takes an optional service id segment.
	switch name {
	case "ServiceDetail":
		if id := params["id"]; id != "" {
			return base + "/services/" + id
		}
	case "PortfolioDetail":
		if id := params["id"]; id != "" {
			return base + "/portfolio/" + id
		}
	case "ServiceRequest":
		if sid := params["serviceId"]; sid != "" {
			return base + "/request/" + sid
		}
		return base + "/request"
	case "home":
		return base
	}

	if path, ok := routePaths[name]; ok && path != "" {
		return base + "/" + path
	}
	return base + "/" + name
}
