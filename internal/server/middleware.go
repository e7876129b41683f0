package server

import (
	"strconv"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/bizdesk/internal/auth/domain"
	"github.com/smallbiznis/bizdesk/internal/companyctx"
	obscontext "github.com/smallbiznis/bizdesk/internal/observability/context"
)

const contextSessionKey = "auth_session"

// AuthRequired resolves the session and scopes the request to its company.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		session, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		ctx := companyctx.WithCompanyID(c.Request.Context(), session.CompanyID)
		ctx = obscontext.WithActor(ctx, "user", session.UserID.String())
		c.Request = c.Request.WithContext(ctx)
		c.Set(contextSessionKey, session)
		c.Next()
	}
}

func sessionFromContext(c *gin.Context) (*authdomain.Session, bool) {
	value, ok := c.Get(contextSessionKey)
	if !ok {
		return nil, false
	}
	session, ok := value.(*authdomain.Session)
	return session, ok && session != nil
}

// allowLogin rejects the attempt before it reaches the password check.
func (s *Server) allowLogin(c *gin.Context, email string) bool {
	res, ok := s.loginLimiter.Allow(c.Request.Context(), c.ClientIP(), email)
	if ok {
		return true
	}
	if res != nil && res.RetryAfter > 0 {
		c.Header("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())+1))
	}
	return false
}
