package http

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/khadamat/webgate/internal/backend"
	"github.com/khadamat/webgate/internal/domain"
	"github.com/khadamat/webgate/internal/domain/entity"
	"github.com/khadamat/webgate/internal/store/locale"
	"github.com/khadamat/webgate/internal/store/portfolio"
	"github.com/khadamat/webgate/internal/store/requests"
	"github.com/khadamat/webgate/internal/store/services"
)

// SiteHandler renders the public site views.
type SiteHandler struct {
	locale    *locale.Store
	page      *locale.PageState
	services  *services.Store
	portfolio *portfolio.Store
	requests  *requests.Store
}

// NewSiteHandler builds the handler.
func NewSiteHandler(loc *locale.Store, page *locale.PageState, svc *services.Store, pf *portfolio.Store, req *requests.Store) *SiteHandler {
	return &SiteHandler{locale: loc, page: page, services: svc, portfolio: pf, requests: req}
}

// pageMeta snapshots the document state for a view model.
func (h *SiteHandler) pageMeta() PageMeta {
	return PageMeta{
		Language:    h.page.Lang(),
		Direction:   h.page.Dir(),
		BodyClasses: h.page.BodyClasses(),
	}
}

// Root redirects / to the negotiated language home (Arabic by default).
func (h *SiteHandler) Root(c *fiber.Ctx) error {
	lang := locale.Negotiate(c.Get(fiber.HeaderAcceptLanguage))
	return c.Redirect("/"+lang, fiber.StatusFound)
}

// Home renders the landing view: active categories plus featured work.
func (h *SiteHandler) Home(c *fiber.Ctx) error {
	ctx := c.UserContext()
	h.services.FetchCategories(ctx)
	h.portfolio.FetchItems(ctx)
	return c.JSON(fiber.Map{
		"page":       h.pageMeta(),
		"categories": h.services.ActiveCategories(),
		"featured":   h.portfolio.FeaturedItems(),
	})
}

// Services renders the service catalog, honoring category and search
// filters from the query string.
func (h *SiteHandler) Services(c *fiber.Ctx) error {
	ctx := c.UserContext()
	categoryID := c.QueryInt("category")
	h.services.SetSelectedCategory(categoryID)
	h.services.SetSearchQuery(c.Query("q"))

	h.services.FetchCategories(ctx)
	h.services.FetchServices(ctx, categoryID)

	resp := fiber.Map{
		"page":       h.pageMeta(),
		"services":   h.services.FilteredServices(),
		"categories": h.services.ActiveCategories(),
	}
	if msg := h.services.Error(); msg != "" {
		resp["error"] = msg
	}
	return c.JSON(resp)
}

// ServiceDetail renders one service.
func (h *SiteHandler) ServiceDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_ID", Message: "service id must be numeric"})
	}
	svc, err := h.services.ServiceDetails(c.UserContext(), id)
	if err != nil {
		return h.storeError(c, err, h.services.Error())
	}
	return c.JSON(fiber.Map{"page": h.pageMeta(), "service": svc})
}

// Portfolio renders the portfolio grid with derived categories.
func (h *SiteHandler) Portfolio(c *fiber.Ctx) error {
	ctx := c.UserContext()
	h.portfolio.SetSelectedCategory(c.QueryInt("category"))
	h.portfolio.FetchItems(ctx)

	resp := fiber.Map{
		"page":       h.pageMeta(),
		"items":      h.portfolio.FilteredItems(),
		"categories": h.portfolio.Categories(),
	}
	if msg := h.portfolio.Error(); msg != "" {
		resp["error"] = msg
	}
	return c.JSON(resp)
}

// PortfolioDetail renders one portfolio item.
func (h *SiteHandler) PortfolioDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_ID", Message: "portfolio id must be numeric"})
	}
	item, err := h.portfolio.ItemDetails(c.UserContext(), id)
	if err != nil {
		return h.storeError(c, err, h.portfolio.Error())
	}
	return c.JSON(fiber.Map{"page": h.pageMeta(), "item": item})
}

// Contact renders the contact view model.
func (h *SiteHandler) Contact(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": h.pageMeta()})
}

// SubmitContact relays a contact-form submission to the backend.
func (h *SiteHandler) SubmitContact(c *fiber.Ctx) error {
	var msg entity.ContactMessage
	if err := c.BodyParser(&msg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: "invalid contact form"})
	}
	if err := h.requests.SubmitContact(c.UserContext(), msg); err != nil {
		return h.storeError(c, err, h.requests.Error())
	}
	return c.JSON(fiber.Map{"message": h.requests.SuccessMessage()})
}

// RequestForm renders the request-a-service view, optionally preloading
// the chosen service.
func (h *SiteHandler) RequestForm(c *fiber.Ctx) error {
	resp := fiber.Map{"page": h.pageMeta()}
	if sid, err := c.ParamsInt("serviceId"); err == nil {
		if svc, err := h.services.ServiceDetails(c.UserContext(), sid); err == nil {
			resp["service"] = svc
		}
	}
	return c.JSON(resp)
}

// SubmitRequest relays a multipart service-request submission,
// attachments included, to the backend.
func (h *SiteHandler) SubmitRequest(c *fiber.Ctx) error {
	serviceID := 0
	if raw := c.FormValue("service_id"); raw != "" {
		var err error
		if serviceID, err = strconv.Atoi(raw); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_ID", Message: "service id must be numeric"})
		}
	}

	form := requests.RequestForm{
		ServiceID:          serviceID,
		ClientName:         c.FormValue("client_name"),
		ClientEmail:        c.FormValue("client_email"),
		ClientPhone:        c.FormValue("client_phone"),
		ProjectTitle:       c.FormValue("project_title"),
		ProjectDescription: c.FormValue("project_description"),
		Deadline:           c.FormValue("deadline"),
		Budget:             c.FormValue("budget"),
	}

	var files []backend.MultipartFile
	if mf, err := c.MultipartForm(); err == nil && mf != nil {
		for _, fh := range mf.File["additional_files"] {
			f, err := fh.Open()
			if err != nil {
				continue
			}
			content, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				continue
			}
			files = append(files, backend.MultipartFile{
				Field:   "additional_files",
				Name:    fh.Filename,
				Content: content,
			})
		}
	}

	created, err := h.requests.SubmitRequest(c.UserContext(), form, files)
	if err != nil {
		return h.storeError(c, err, h.requests.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": h.requests.SuccessMessage(),
		"request": created,
	})
}

// NotFound is the catch-all view.
func (h *SiteHandler) NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NOT_FOUND", Message: "page not found"})
}

// storeError maps a classified store failure to an HTTP response. A
// backend 401 sends the browser to the admin login page, mirroring the
// forced-logout behavior.
func (h *SiteHandler) storeError(c *fiber.Ctx, err error, message string) error {
	return storeErrorResponse(c, err, message)
}

func storeErrorResponse(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Redirect("/"+domain.LangEnglish+"/admin/login", fiber.StatusFound)
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NOT_FOUND", Message: message})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{Code: "FORBIDDEN", Message: message})
	case domain.IsNetwork(err):
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Code: "NETWORK", Message: message})
	default:
		var valErr *domain.ValidationError
		if errors.As(err, &valErr) {
			msg := valErr.Message
			if msg == "" {
				msg = message
			}
			return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{Code: "VALIDATION", Message: msg})
		}
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Code: "BACKEND", Message: message})
	}
}
