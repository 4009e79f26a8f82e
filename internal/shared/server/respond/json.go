package respond

import "github.com/gin-gonic/gin"

// JSON writes payload with the given status. Analysis endpoints respond
// through this package so success and error shapes stay uniform.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}
