package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/sekai-soft/yurikamome/internal/application/dto"
	"github.com/sekai-soft/yurikamome/internal/application/services"
	"github.com/sekai-soft/yurikamome/internal/interfaces/http/middleware"
	"github.com/sekai-soft/yurikamome/pkg/errors"
)

// OAuthHandler handles the authorize and token endpoints.
type OAuthHandler struct {
	oauth         *services.OAuthService
	sessions      *services.SessionService
	secureCookies bool
}

// NewOAuthHandler creates a new OAuth handler.
func NewOAuthHandler(oauth *services.OAuthService, sessions *services.SessionService, secureCookies bool) *OAuthHandler {
	return &OAuthHandler{
		oauth:         oauth,
		sessions:      sessions,
		secureCookies: secureCookies,
	}
}

// Authorize renders the consent page, or bounces to the login page when
// no session is bound yet. force_login=true drops the current session
// and restarts at the login step.
// GET /oauth/authorize
func (h *OAuthHandler) Authorize(c *gin.Context) {
	var req dto.AuthorizeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.renderConsentError(c, err.Error())
		return
	}

	sess := middleware.GetSession(c)
	if sess != nil && req.ForceLogin == "true" {
		if err := h.sessions.Logout(c.Request.Context(), sess.SessionID); err != nil {
			handleAPIError(c, err)
			return
		}
		h.clearSessionCookie(c)
		sess = nil
	}
	if sess == nil {
		c.Redirect(http.StatusFound, "/login?from="+url.QueryEscape(c.Request.URL.RequestURI()))
		return
	}

	view, err := h.oauth.Authorize(c.Request.Context(), &req, sess)
	if err != nil {
		if fe, ok := errors.AsFlowError(err); ok {
			h.renderConsentError(c, fe.Message)
			return
		}
		handleAPIError(c, err)
		return
	}

	c.HTML(http.StatusOK, "oauth_authorize.html", gin.H{
		"Username":     view.Username,
		"AppName":      view.AppName,
		"AppWebsite":   view.AppWebsite,
		"AppScopes":    view.AppScopes,
		"ResponseType": req.ResponseType,
		"ClientID":     req.ClientID,
		"RedirectURI":  req.RedirectURI,
		"Scope":        req.Scope,
	})
}

// AuthorizeConfirm turns consent into a stored authorization code and
// redirects back to the client.
// POST /oauth/authorize
func (h *OAuthHandler) AuthorizeConfirm(c *gin.Context) {
	var req dto.AuthorizeRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderConsentError(c, err.Error())
		return
	}

	sess := middleware.GetSession(c)
	if sess == nil {
		c.Redirect(http.StatusFound, "/login?from="+url.QueryEscape(c.Request.URL.RequestURI()))
		return
	}

	target, err := h.oauth.ConfirmAuthorize(c.Request.Context(), &req, sess.SessionID)
	if err != nil {
		if fe, ok := errors.AsFlowError(err); ok {
			h.renderConsentError(c, fe.Message)
			return
		}
		handleAPIError(c, err)
		return
	}

	c.Redirect(http.StatusFound, target)
}

// Token exchanges an authorization code or client credentials.
// POST /oauth/token
func (h *OAuthHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBind(&req); err != nil {
		handleAPIError(c, errors.NewFlowError(errors.CodeInvalidRequest, "grant_type is required"))
		return
	}

	resp, err := h.oauth.Token(c.Request.Context(), &req)
	if err != nil {
		handleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *OAuthHandler) renderConsentError(c *gin.Context, message string) {
	c.HTML(http.StatusOK, "oauth_authorize.html", gin.H{"Error": message})
}

func (h *OAuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.secureCookies, true)
}
