package admin

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"kef/config"
	"kef/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// AuthController - admin login/logout issuing session JWTs
type AuthController struct {
	cfg *config.Config
	rdb *redis.Client
}

func NewAuthController(cfg *config.Config, rdb *redis.Client) *AuthController {
	return &AuthController{cfg: cfg, rdb: rdb}
}

// LoginRequest - admin credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks the operator credentials and issues a bearer token.
// POST /api/admin/login
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
		return
	}

	if ac.cfg.AdminEmail == "" || ac.cfg.AdminPassword == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Admin account is not configured"})
		return
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(ac.cfg.AdminEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(ac.cfg.AdminPassword)) == 1
	if !emailOK || !passOK {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateAdminJWT(req.Email, ac.cfg.JWTSecret)
	if err != nil {
		utils.LogError(err, "AdminLogin")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// Logout revokes the presented token until its natural expiry.
// POST /api/admin/logout
func (ac *AuthController) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing bearer token"})
		return
	}

	ttl := 72 * time.Hour
	if claims, err := utils.ParseJWT(token, ac.cfg.JWTSecret); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
				ttl = remaining
			}
		}
	}

	if ac.rdb != nil {
		if err := ac.rdb.Set(utils.RedisCtx(), "blacklist:"+token, "1", ttl).Err(); err != nil {
			utils.LogError(err, "AdminLogout")
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
