package cookie

import "github.com/gin-gonic/gin"

const AccessTokenName = "access_token"

func GetAccessToken(c *gin.Context) string {
	v, err := c.Cookie(AccessTokenName)
	if err != nil {
		return ""
	}
	return v
}
