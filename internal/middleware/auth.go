package middleware

import (
	"strings"
	"time"

	"mentora_backend/internal/config"
	"mentora_backend/internal/model"
	"mentora_backend/internal/repository"
	"mentora_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token issued by the external identity
// service and injects the claims into the request context.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("participant", claims)
		c.Next()
	}
}

// RoleMiddleware restricts a route to the given roles. Admins pass every
// role check.
func RoleMiddleware(roles ...model.ParticipantRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetParticipantFromContext(c)
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		if claims.Role == model.RoleAdmin {
			c.Next()
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		util.Forbidden(c)
		c.Abort()
	}
}

// ActivityMiddleware stamps the participant's last-seen time on
// authenticated requests.
func ActivityMiddleware(participantRepo *repository.ParticipantRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims := util.GetParticipantFromContext(c); claims != nil {
			participantRepo.DB.Model(&model.Participant{}).
				Where("id = ?", claims.ParticipantID).
				Update("last_seen", time.Now())
		}
		c.Next()
	}
}
