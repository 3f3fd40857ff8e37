package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"careerpath/internal/domain"
	"careerpath/internal/service"
)

const currentUserKey = "current_user"

// JWTAuthMiddleware valida el bearer token y deja en el contexto el usuario dueño de
// cuestionarios y recomendaciones.
func JWTAuthMiddleware(logger *zap.Logger, jwtSvc *service.JWTService) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		if jwtSvc == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "jwt not configured"})
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := jwtSvc.ParseAccessToken(strings.TrimSpace(header[len("Bearer "):]))
		switch {
		case errors.Is(err, service.ErrJWTExpired):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token expired"})
			return
		case err != nil:
			logger.Debug("rejected bearer token", zap.String("path", c.FullPath()), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		user := claims.User()
		user.Email = strings.ToLower(strings.TrimSpace(user.Email))
		user.DisplayName = strings.TrimSpace(user.DisplayName)
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser devuelve el usuario autenticado de la request.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	val, ok := c.Get(currentUserKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := val.(domain.User)
	return user, ok && user.ID != ""
}
