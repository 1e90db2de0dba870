package cryptasium

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"cryptasium/views"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, views.AdminLogin(a.Config.Site(), false, CsrfToken(c)))
	}
	stats, err := a.Store.Stats()
	if err != nil {
		return err
	}
	return Render(c, views.AdminDashboard(a.Config.Site(), stats, c.QueryParam("msg"), CsrfToken(c)))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	username := c.FormValue("username")
	password := c.FormValue("password")
	if a.checkCredentials(username, password) {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(c.RealIP())
	return Render(c, views.AdminLogin(a.Config.Site(), true, CsrfToken(c)))
}

// checkCredentials compares submitted credentials against the configured
// admin account. The username and plaintext password paths use constant-time
// comparison; when a bcrypt hash is configured it takes precedence.
func (a *App) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.Config.AdminUsername)) == 1
	if a.Config.AdminPasswordHash != "" {
		err := bcrypt.CompareHashAndPassword([]byte(a.Config.AdminPasswordHash), []byte(password))
		return userOK && err == nil
	}
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.Config.AdminPassword)) == 1
	return userOK && passOK
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// requireAdmin redirects unauthenticated requests to the login page. Handlers
// call it first and stop when it reports false.
func requireAdmin(c echo.Context) bool {
	if IsAdmin(c) {
		return true
	}
	_ = c.Redirect(http.StatusSeeOther, "/admin/")
	return false
}

// --- Topic idea review ---

func (a *App) handleAdminIdeaList(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	ideas, err := a.Store.ListTopicIdeas()
	if err != nil {
		return err
	}
	return Render(c, views.AdminIdeaList(a.Config.Site(), ideas, c.QueryParam("msg"), CsrfToken(c)))
}

func (a *App) handleAdminIdeaApprove(c echo.Context) error {
	return a.setIdeaStatus(c, IdeaApproved, "Idea approved.")
}

func (a *App) handleAdminIdeaReject(c echo.Context) error {
	return a.setIdeaStatus(c, IdeaRejected, "Idea rejected.")
}

func (a *App) setIdeaStatus(c echo.Context, status, msg string) error {
	if !requireAdmin(c) {
		return nil
	}
	id, ok := idParam(c)
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	if err := a.Store.SetTopicIdeaStatus(id, status); err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return redirectWithMsg(c, "/admin/ideas/", msg)
}

func (a *App) handleAdminIdeaDelete(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	id, ok := idParam(c)
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	if err := a.Store.DeleteTopicIdea(id); err != nil {
		return err
	}
	return redirectWithMsg(c, "/admin/ideas/", "Idea deleted.")
}
