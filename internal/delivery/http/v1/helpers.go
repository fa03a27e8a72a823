package v1

import (
	"errors"
	"io"
	"strconv"

	"placementhub-backend/pkg/apperror"
	"placementhub-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterBindingValidators adds the custom rules (gpa, grad_year, skill_list...)
// to gin's binding engine so request structs can use them in binding tags.
func RegisterBindingValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}
}

// bindJSON decodes the body into req and reports a readable 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.Error(apperror.BadRequest(bindMessage(err)))
		return false
	}
	return true
}

// bindOptionalJSON is bindJSON for endpoints whose body may be omitted.
func bindOptionalJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	c.Error(apperror.BadRequest(bindMessage(err)))
	return false
}

func bindMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return validation.Message(err)
	}
	return "Invalid request body"
}

// idParam parses a positive numeric path parameter.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.Error(apperror.BadRequest("Invalid " + name))
		return 0, false
	}
	return id, true
}
