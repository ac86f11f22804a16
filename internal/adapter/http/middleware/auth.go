package middleware

import (
	"net/http"
	"strings"

	"grant_portal/internal/domain/entities"
	"grant_portal/pkg"

	"github.com/gin-gonic/gin"
)

const (
	HeaderUserID    = "X-User-ID"
	HeaderUserRole  = "X-User-Role"
	HeaderUserEmail = "X-User-Email"

	principalKey = "principal"
)

var (
	errUnauthenticated = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Missing or invalid identity", http.StatusUnauthorized)
	errForbidden       = pkg.NewDomainErrorSimple("FORBIDDEN", "Role not allowed on this resource", http.StatusForbidden)
)

// Principal is the caller identity injected by the upstream auth gateway.
type Principal struct {
	UserID string
	Actor  entities.Actor
	Email  string
}

// Auth reads the identity headers. A missing role means applicant.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if userID == "" {
			c.AbortWithStatusJSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
			return
		}

		actor := entities.ActorApplicant
		if role := c.GetHeader(HeaderUserRole); strings.TrimSpace(role) != "" {
			parsed, err := entities.ParseActor(role)
			if err != nil {
				c.AbortWithStatusJSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
				return
			}
			actor = parsed
		}

		c.Set(principalKey, Principal{
			UserID: userID,
			Actor:  actor,
			Email:  strings.TrimSpace(c.GetHeader(HeaderUserEmail)),
		})
		c.Next()
	}
}

// RequireActors lets only the listed roles through.
func RequireActors(actors ...entities.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
			return
		}
		for _, a := range actors {
			if p.Actor == a {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(errForbidden.HTTPStatus, errForbidden.ToHTTPError())
	}
}

func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// SetPrincipal is used by tests that mount handlers without Auth.
func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
}
