package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khadamat/webgate/internal/domain/entity"
	"github.com/khadamat/webgate/internal/store/locale"
	"github.com/khadamat/webgate/internal/store/portfolio"
	"github.com/khadamat/webgate/internal/store/requests"
	"github.com/khadamat/webgate/internal/store/services"
	"github.com/khadamat/webgate/internal/store/session"
)

// AdminHandler renders the back-office views.
type AdminHandler struct {
	session   *session.Store
	locale    *locale.Store
	page      *locale.PageState
	services  *services.Store
	portfolio *portfolio.Store
	requests  *requests.Store
}

// NewAdminHandler builds the handler.
func NewAdminHandler(sess *session.Store, loc *locale.Store, page *locale.PageState, svc *services.Store, pf *portfolio.Store, req *requests.Store) *AdminHandler {
	return &AdminHandler{session: sess, locale: loc, page: page, services: svc, portfolio: pf, requests: req}
}

func (h *AdminHandler) pageMeta() PageMeta {
	return PageMeta{
		Language:    h.page.Lang(),
		Direction:   h.page.Dir(),
		BodyClasses: h.page.BodyClasses(),
	}
}

// LoginPage renders the login view, keeping the return path.
func (h *AdminHandler) LoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":     h.pageMeta(),
		"redirect": c.Query("redirect"),
	})
}

// Login exchanges submitted credentials for a session. On success the
// browser returns to the preserved destination, or the dashboard.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var creds session.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: "invalid login form"})
	}
	if creds.Username == "" || creds.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: "username and password are required"})
	}
	if err := h.session.Login(c.UserContext(), creds); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Code: "UNAUTHORIZED", Message: h.session.Error()})
	}
	target := c.Query("redirect")
	if target == "" {
		target = h.locale.LocalizedRoute("AdminDashboard", nil)
	}
	return c.Redirect(target, fiber.StatusFound)
}

// Logout clears the session and returns to the language home. Never
// fails observably.
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	h.session.Logout(c.UserContext())
	return c.Redirect(h.locale.LocalizedRoute("home", nil), fiber.StatusFound)
}

// Dashboard renders request counts by status.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	h.requests.FetchRequests(c.UserContext())
	resp := fiber.Map{
		"page": h.pageMeta(),
		"user": h.session.User(),
		"stats": fiber.Map{
			"pending":     len(h.requests.PendingRequests()),
			"in_progress": len(h.requests.InProgressRequests()),
			"completed":   len(h.requests.CompletedRequests()),
			"total":       len(h.requests.Requests()),
		},
	}
	if msg := h.requests.Error(); msg != "" {
		resp["error"] = msg
	}
	return c.JSON(resp)
}

// Requests renders the back-office request list.
func (h *AdminHandler) Requests(c *fiber.Ctx) error {
	h.requests.FetchRequests(c.UserContext())
	resp := fiber.Map{
		"page":     h.pageMeta(),
		"requests": h.requests.Requests(),
	}
	if msg := h.requests.Error(); msg != "" {
		resp["error"] = msg
	}
	return c.JSON(resp)
}

// RequestDetail renders one request.
func (h *AdminHandler) RequestDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_ID", Message: "request id must be numeric"})
	}
	req, err := h.requests.RequestDetails(c.UserContext(), id)
	if err != nil {
		return storeErrorResponse(c, err, h.requests.Error())
	}
	return c.JSON(fiber.Map{"page": h.pageMeta(), "request": req})
}

// updateStatusBody is the PATCH payload for a request.
type updateStatusBody struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// UpdateRequestStatus patches a request's status and notes.
func (h *AdminHandler) UpdateRequestStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_ID", Message: "request id must be numeric"})
	}
	var body updateStatusBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: "invalid status payload"})
	}
	if !validStatus(body.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: "unknown status"})
	}
	updated, err := h.requests.UpdateStatus(c.UserContext(), id, body.Status, body.Notes)
	if err != nil {
		return storeErrorResponse(c, err, h.requests.Error())
	}
	return c.JSON(fiber.Map{
		"message": h.requests.SuccessMessage(),
		"request": updated,
	})
}

// Services renders the back-office service list.
func (h *AdminHandler) Services(c *fiber.Ctx) error {
	ctx := c.UserContext()
	h.services.FetchCategories(ctx)
	h.services.FetchServices(ctx, 0)
	return c.JSON(fiber.Map{
		"page":       h.pageMeta(),
		"services":   h.services.Services(),
		"categories": h.services.Categories(),
	})
}

// Portfolio renders the back-office portfolio list.
func (h *AdminHandler) Portfolio(c *fiber.Ctx) error {
	h.portfolio.FetchItems(c.UserContext())
	return c.JSON(fiber.Map{
		"page":  h.pageMeta(),
		"items": h.portfolio.Items(),
	})
}

func validStatus(s string) bool {
	switch s {
	case entity.StatusPending, entity.StatusInProgress, entity.StatusCompleted, entity.StatusCancelled:
		return true
	}
	return false
}
