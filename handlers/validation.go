package handlers

import (
	"fmt"
	"reflect"
	"strings"

	"restofinder/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom tags to gin's validator and reports fields by their JSON name
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	if err := v.RegisterValidation("province", func(fl validator.FieldLevel) bool {
		return models.IsProvince(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := models.NormalizeClock(fl.Field().String())
		return err == nil
	})
}

// fieldPath drops the request struct name: "restaurantCreateRequest.businessHours[2][0]" -> "businessHours[2][0]"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "must be a valid e-mail address"
	case "province":
		return "must be one of " + strings.Join(models.Provinces, ", ")
	case "clock":
		return "must be a time of day, HH:MM or HH:MM:SS"
	case "oneof":
		return "must be one of " + fe.Param()
	case "len":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array {
			return "must have exactly " + fe.Param() + " entries"
		}
		return "must be exactly " + fe.Param() + " characters long"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters long"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters long"
		}
		return "must be at most " + fe.Param()
	case "numeric":
		return "must be numeric"
	}
	return "invalid value"
}
