package app

import (
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
)

// ValidError is one failed binding rule.
type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	errs := make([]string, 0, len(v))
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// BindAndValid binds the request body into v and translates validation
// failures with the request translator.
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors
	err := c.ShouldBind(v)
	if err == nil {
		return true, nil
	}

	verrs, ok := err.(val.ValidationErrors)
	if !ok {
		errs = append(errs, &ValidError{Key: "body", Message: err.Error()})
		return false, errs
	}

	trans, ok := c.Value("trans").(ut.Translator)
	if !ok {
		for _, fieldErr := range verrs {
			errs = append(errs, &ValidError{Key: fieldErr.Field(), Message: fieldErr.Error()})
		}
		return false, errs
	}
	for key, value := range verrs.Translate(trans) {
		errs = append(errs, &ValidError{Key: key, Message: value})
	}
	return false, errs
}
