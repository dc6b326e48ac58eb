// Package api defines the shared HTTP response envelope and the
// public-facing DTOs exchanged with the mobile client.
package api

import "github.com/gin-gonic/gin"

// Response は全エンドポイント共通のレスポンスエンベロープです。
// 成功時は data を含み、失敗時は success=false と message のみを返します。
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// OK writes a success envelope with the given status code.
func OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

// Fail writes an error envelope with the given status code.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: false, Message: message})
}
