package cookie

import (
	"net/http"
	"time"

	"riviera-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const AccessTokenCookieName = "access_token"

func SetAccessToken(c *gin.Context, cfg config.CookieConfig, token string, expiry time.Duration) {
	c.SetSameSite(sameSite(cfg.SameSite))
	c.SetCookie(
		AccessTokenCookieName,
		token,
		int(expiry.Seconds()),
		"/",
		cfg.Domain,
		cfg.Secure,
		true, // HttpOnly
	)
}

func ClearAccessToken(c *gin.Context, cfg config.CookieConfig) {
	c.SetSameSite(sameSite(cfg.SameSite))
	c.SetCookie(AccessTokenCookieName, "", -1, "/", cfg.Domain, cfg.Secure, true)
}

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}

func sameSite(s string) http.SameSite {
	switch s {
	case "Strict":
		return http.SameSiteStrictMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
