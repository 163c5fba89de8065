package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/user/cinelog/internal/model"
	"github.com/user/cinelog/internal/utils"
)

// SessionUserKey Session 中保存登录用户信息的键
const SessionUserKey = "userinfo"

// RequireAuth 必须登录中间件（页面路由用）。
// 没有有效 Session 时写入提示并重定向到登录页，不直接报错。
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		su, ok := CurrentUser(c)
		if !ok {
			utils.SetFlash(c, utils.FlashError, "请先登录后再访问该页面")
			c.Redirect(http.StatusFound, "/auth/login?redirect="+c.Request.URL.Path)
			c.Abort()
			return
		}

		// 将用户信息存入上下文，后续 handler 统一从这里取
		c.Set("user_id", su.ID)
		c.Set("email", su.Email)
		c.Set("username", su.Username)
		c.Next()
	}
}

// CurrentUser 从 Session 读取当前登录用户
func CurrentUser(c *gin.Context) (model.SessionUser, bool) {
	session := sessions.Default(c)
	v := session.Get(SessionUserKey)
	if v == nil {
		return model.SessionUser{}, false
	}
	su, ok := v.(model.SessionUser)
	if !ok || su.ID == 0 {
		return model.SessionUser{}, false
	}
	return su, true
}

// GetUserID 从上下文获取用户 ID（未登录返回 0）
func GetUserID(c *gin.Context) int {
	if userID, exists := c.Get("user_id"); exists {
		return userID.(int)
	}
	if su, ok := CurrentUser(c); ok {
		return su.ID
	}
	return 0
}

// ==================== JSON API 认证 ====================

// Claims JWT 声明
type Claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// RequireAPIAuth API Bearer Token 认证中间件
func RequireAPIAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := extractClaims(c, jwtSecret)
		if err != nil {
			utils.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

// extractClaims 从 Authorization Header 中提取 JWT Claims
func extractClaims(c *gin.Context, jwtSecret string) (*Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, jwt.ErrTokenMalformed
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// GenerateToken 生成 JWT Token
func GenerateToken(userID int, email, jwtSecret string, expiry time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}
