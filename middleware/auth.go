package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"marketplace/models"
	"marketplace/utils"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Authorization header required",
			})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Invalid or expired token",
				Error:   err.Error(),
			})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

func RoleMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Success: false,
				Message: "User role not found",
			})
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Success: false,
			Message: "Access denied. Insufficient role",
		})
		c.Abort()
	}
}

func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(models.RoleAdmin)
}

func SellerMiddleware() gin.HandlerFunc {
	return RoleMiddleware(models.RoleSeller, models.RoleAdmin)
}

// CartOwnerMiddleware resolves who a cart belongs to. Authenticated users
// own the cart keyed by their user ID; guests get a session ID from the
// X-Cart-Session header, minted on first use and echoed back so the
// client can keep presenting it.
func CartOwnerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) == 2 && tokenParts[0] == "Bearer" {
				if claims, err := utils.ValidateToken(tokenParts[1]); err == nil {
					c.Set("user_id", claims.UserID)
					c.Set("user_role", claims.Role)
					c.Set("cart_owner", strconv.Itoa(claims.UserID))
					c.Next()
					return
				}
			}
		}

		session := c.GetHeader("X-Cart-Session")
		if _, err := uuid.Parse(session); err != nil {
			session = uuid.NewString()
		}
		c.Header("X-Cart-Session", session)
		c.Set("cart_owner", "guest:"+session)
		c.Next()
	}
}
