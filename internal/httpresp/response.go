package httpresp

import "github.com/gin-gonic/gin"

// OK escreve a resposta de sucesso padrão: payload plano com success=true.
func OK(c *gin.Context, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["success"] = true
	c.JSON(200, payload)
}

func Created(c *gin.Context, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["success"] = true
	c.JSON(201, payload)
}
