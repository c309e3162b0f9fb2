package console

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/labshare-dev/labshare/internal/api"
	"github.com/labshare-dev/labshare/internal/client"
	"github.com/labshare-dev/labshare/internal/router"
	"github.com/labshare-dev/labshare/internal/session"
)

const (
	tokenCookie = "labshare_token"
	nameCookie  = "labshare_name"

	defaultCookieTTL = 24 * time.Hour
)

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
	UserType string `form:"user_type" binding:"required,oneof=student teacher admin"`
}

// sessionFromCookie rebuilds the visitor's session. With a JWT secret configured,
// cookies that fail verification are treated as anonymous.
func (s *Server) sessionFromCookie(c *gin.Context) *session.Session {
	token, err := c.Cookie(tokenCookie)
	if err != nil || token == "" {
		return session.Anonymous()
	}

	if len(s.secret) > 0 {
		if _, err := session.VerifyClaims(token, s.secret); err != nil {
			s.logger.Debug().Err(err).Msg("Rejected session cookie")
			return session.Anonymous()
		}
	}

	var cached *api.Profile
	if name, err := c.Cookie(nameCookie); err == nil && name != "" {
		cached = &api.Profile{Name: name}
	}

	return session.New(token, cached)
}

func (s *Server) login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		s.logger.Debug().Err(err).Msg("Invalid login form")
		s.renderLoginError(c, http.StatusBadRequest, "请填写用户名、密码并选择用户类型")
		return
	}

	result, err := s.client(session.Anonymous()).Login(c.Request.Context(), api.LoginInput{
		Username: form.Username,
		Password: form.Password,
		UserType: api.UserType(form.UserType),
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("username", form.Username).Msg("Console login failed")

		status, message := http.StatusBadGateway, "无法连接到服务器, 请稍后重试"
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			status, message = http.StatusUnauthorized, apiErr.Message
			if message == "" {
				message = "用户名或密码错误"
			}
		}
		s.renderLoginError(c, status, message)
		return
	}

	maxAge := int(defaultCookieTTL.Seconds())
	if exp, ok := session.New(result.Token, nil).ExpiresAt(); ok {
		maxAge = int(time.Until(exp).Seconds())
	}

	s.setCookie(c, tokenCookie, result.Token, maxAge)
	s.setCookie(c, nameCookie, result.User.Name, maxAge)

	s.logger.Info().Str("user_id", result.User.ID).Str("user_type", string(result.User.UserType)).Msg("Console login")
	c.Redirect(http.StatusSeeOther, router.HomePath)
}

func (s *Server) logout(c *gin.Context) {
	s.setCookie(c, tokenCookie, "", -1)
	s.setCookie(c, nameCookie, "", -1)
	c.Redirect(http.StatusSeeOther, router.HomePath)
}

func (s *Server) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", s.config.Console.SecureCookie, true)
}

// renderLoginError shows the home view again with the login failure
func (s *Server) renderLoginError(c *gin.Context, status int, message string) {
	sess := session.Anonymous()
	nav := router.Navigate(router.HomePath, sess.Flags())
	s.render(c, status, nav, sess, s.homeData(c, sess), message)
}

// client builds an API client that calls the backend as the visitor
func (s *Server) client(sess *session.Session) *client.Client {
	return client.New(s.config.API.URL,
		client.WithHTTPClient(s.httpClient),
		client.WithTokenSource(client.StaticToken(sess.Token)),
		client.WithLogger(s.logger),
	)
}
