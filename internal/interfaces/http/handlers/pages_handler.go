package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sekai-soft/yurikamome/internal/application/dto"
	"github.com/sekai-soft/yurikamome/internal/application/services"
	"github.com/sekai-soft/yurikamome/internal/interfaces/http/middleware"
	"github.com/sekai-soft/yurikamome/pkg/logger"
)

// PagesHandler serves the human-facing HTML pages.
type PagesHandler struct {
	sessions      *services.SessionService
	secureCookies bool
}

// NewPagesHandler creates a new pages handler.
func NewPagesHandler(sessions *services.SessionService, secureCookies bool) *PagesHandler {
	return &PagesHandler{
		sessions:      sessions,
		secureCookies: secureCookies,
	}
}

// Index shows whether a Twitter session is bound, via its twid marker.
// GET /
func (h *PagesHandler) Index(c *gin.Context) {
	var twid string
	if sess := middleware.GetSession(c); sess != nil {
		value, err := h.sessions.Twid(sess)
		if err != nil {
			logger.FromContext(c.Request.Context()).Warn("failed to read twid", logger.Error(err))
		} else {
			twid = value
		}
	}
	c.HTML(http.StatusOK, "index.html", gin.H{"Twid": twid})
}

// LoginPage renders the Twitter credential form. `from` carries the
// request to replay after a successful login.
// GET /login
func (h *PagesHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"From": c.Query("from")})
}

// TwitterAuth performs the upstream login and binds the session cookie.
// POST /twitter_auth
func (h *PagesHandler) TwitterAuth(c *gin.Context) {
	var req dto.TwitterLoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": err.Error(), "From": req.From})
		return
	}

	sess, err := h.sessions.Login(c.Request.Context(), &req)
	if err != nil {
		logger.FromContext(c.Request.Context()).Warn("twitter login failed", logger.Error(err))
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": "Login failed. Check your credentials and try again.", "From": req.From})
		return
	}

	c.SetCookie(middleware.SessionCookieName, sess.SessionID, 0, "/", "", h.secureCookies, true)

	target := "/"
	if strings.HasPrefix(req.From, "/") {
		target = req.From
	}
	c.Redirect(http.StatusFound, target)
}

// Logout deletes the session row and clears the cookie.
// GET /logout
func (h *PagesHandler) Logout(c *gin.Context) {
	if sess := middleware.GetSession(c); sess != nil {
		if err := h.sessions.Logout(c.Request.Context(), sess.SessionID); err != nil {
			handleAPIError(c, err)
			return
		}
	}
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.secureCookies, true)
	c.Redirect(http.StatusFound, "/")
}
