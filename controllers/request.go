package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Santiago26009/blog-challenge/domain"
	"github.com/Santiago26009/blog-challenge/utils"
)

const datetimeFormatMessage = "Datetime has wrong format. Use one of these formats instead: YYYY-MM-DDThh:mm[:ss[.uuuuuu]][+HH:MM|-HH:MM|Z]."

var timeType = reflect.TypeOf(time.Time{})

// bindJSON decodes the body into dst. An empty body decodes as {} so missing
// fields are reported by validation.
func bindJSON(c *gin.Context, dst interface{}) error {
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		if typeErr.Type == timeType {
			return domain.FieldValidation(typeErr.Field, "invalid", datetimeFormatMessage)
		}
		return domain.FieldValidation(typeErr.Field, "incorrect_type",
			fmt.Sprintf("Incorrect type. Expected %s, but got %s.", jsonKind(typeErr.Type), typeErr.Value))
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return domain.BadRequest(fmt.Sprintf("JSON parse error - %s", err.Error()))
	}
	return domain.BadRequest(err.Error())
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "pk value"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Map, reflect.Struct:
		return "object"
	default:
		return "string"
	}
}

// pathID parses the :id parameter; a malformed id is reported as notFound.
func pathID(c *gin.Context, notFound string) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.NotFound(notFound)
	}
	return uint(id), nil
}

// currentUserID is set by the auth middleware on every authenticated route.
func currentUserID(c *gin.Context) uint {
	if user := utils.GetUser(c); user != nil {
		return user.UserID
	}
	return 0
}
