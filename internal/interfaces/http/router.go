package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khadamat/webgate/internal/router"
	"github.com/khadamat/webgate/internal/store/locale"
	"github.com/khadamat/webgate/internal/store/portfolio"
	"github.com/khadamat/webgate/internal/store/requests"
	"github.com/khadamat/webgate/internal/store/services"
	"github.com/khadamat/webgate/internal/store/session"
)

// RouterDeps are the dependencies for the gateway routes.
type RouterDeps struct {
	Guard     *router.Guard
	Session   *session.Store
	Locale    *locale.Store
	Page      *locale.PageState
	Services  *services.Store
	Portfolio *portfolio.Store
	Requests  *requests.Store
	AppName   string
}

// Router registers the site and back-office routes. Every
// language-prefixed route goes through the navigation guard first.
func Router(app *fiber.App, deps RouterDeps) {
	site := NewSiteHandler(deps.Locale, deps.Page, deps.Services, deps.Portfolio, deps.Requests)
	admin := NewAdminHandler(deps.Session, deps.Locale, deps.Page, deps.Services, deps.Portfolio, deps.Requests)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	// Root redirects to the negotiated language home.
	app.Get("/", site.Root)

	// Anchored: the constraint is matched with MatchString, so without
	// anchors any segment containing "en" or "ar" would enter the group.
	lang := app.Group("/:lang<regex(^(en|ar)$)>", GuardMiddleware(deps.Guard))

	lang.Get("/", site.Home)
	lang.Get("/services", site.Services)
	lang.Get("/services/:id", site.ServiceDetail)
	lang.Get("/portfolio", site.Portfolio)
	lang.Get("/portfolio/:id", site.PortfolioDetail)
	lang.Get("/contact", site.Contact)
	lang.Post("/contact", site.SubmitContact)
	lang.Get("/request", site.RequestForm)
	lang.Get("/request/:serviceId", site.RequestForm)
	lang.Post("/request", site.SubmitRequest)
	lang.Post("/request/:serviceId", site.SubmitRequest)

	lang.Get("/admin/login", admin.LoginPage)
	lang.Post("/admin/login", admin.Login)
	lang.Post("/admin/logout", admin.Logout)
	lang.Get("/admin", admin.Dashboard)
	lang.Get("/admin/services", admin.Services)
	lang.Get("/admin/requests", admin.Requests)
	lang.Get("/admin/requests/:id", admin.RequestDetail)
	lang.Patch("/admin/requests/:id", admin.UpdateRequestStatus)
	lang.Get("/admin/portfolio", admin.Portfolio)

	// Catch-all: unmatched paths render the not-found view.
	app.Use(site.NotFound)
}
