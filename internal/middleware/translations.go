package middleware

import (
	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// Translations stores the request translator in the context so binding
// errors can be rendered in the client language.
func Translations(uni *ut.UniversalTranslator) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.GetHeader("lang")
		trans, found := uni.GetTranslator(lang)
		if !found {
			trans, _ = uni.GetTranslator("en")
		}
		c.Set("trans", trans)
		c.Next()
	}
}
