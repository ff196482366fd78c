// Package app holds HTTP response helpers shared by all handlers.
package app

import (
	"net/http"

	"github.com/spacekeep/capture-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// Res is the unified response envelope: Code/Status/Message/Data.
// Optional fields use omitempty.
type Res struct {
	Code    int         `json:"code"`
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

type Response struct {
	Ctx *gin.Context
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{Ctx: ctx}
}

// ToResponse renders a registered code with its payload.
func (r *Response) ToResponse(c *code.Code) {
	res := Res{
		Code:    c.Code(),
		Status:  c.Status(),
		Message: c.Msg(),
	}
	if c.HaveData() {
		res.Data = c.Data()
	}
	if c.HaveDetails() {
		res.Details = c.Details()
	}
	r.Ctx.JSON(http.StatusOK, res)
}
