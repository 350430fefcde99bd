package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (that *handlers) PingHandler(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}
