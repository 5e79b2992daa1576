package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"Lunch-App/internal/domain/repository"
	"Lunch-App/internal/usecase"
)

// ValidationError はバリデーションエラーを表す
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var validate = newValidator()

// newValidator はエラーのフィールド名にJSONタグ名を使うバリデーターを作成
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct はvalidateタグを検証し、最初の違反をValidationErrorとして返す
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := strings.SplitN(fe.Namespace(), ".", 2)
		name := fe.Field()
		if len(field) == 2 {
			name = field[1]
		}
		return &ValidationError{Field: name, Message: messageFor(fe)}
	}
	return err
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "必須項目です"
	case "min", "gte":
		return "値が小さすぎます（最小: " + fe.Param() + "）"
	case "max", "lte":
		return "値が大きすぎます（最大: " + fe.Param() + "）"
	case "gt":
		return fe.Param() + "より大きい値を指定してください"
	case "oneof":
		return "次のいずれかを指定してください: " + fe.Param()
	default:
		return "不正な値です"
	}
}

// validateCoordinates は緯度経度の範囲をチェックする
func validateCoordinates(field string, lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return &ValidationError{Field: field + ".latitude", Message: "緯度は-90から90の範囲で指定してください"}
	}
	if lng < -180 || lng > 180 {
		return &ValidationError{Field: field + ".longitude", Message: "経度は-180から180の範囲で指定してください"}
	}
	return nil
}

// respondValidationError は400レスポンスを返す
func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "バリデーションエラー",
		"details": err.Error(),
	})
}

// respondError はドメインのエラーをHTTPステータスに対応付けて返す
func respondError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrNotConfigured):
		status = http.StatusServiceUnavailable
	case errors.Is(err, usecase.ErrInvalidPreferences):
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}
