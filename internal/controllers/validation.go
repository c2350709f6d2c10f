package controllers

import (
	"sync"

	"github.com/fsdevblog/tinylink/internal/codes"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var registerOnce sync.Once

// createLinkRequest тело создания ссылки. Приходит как JSON (API) или как форма (дашборд).
type createLinkRequest struct {
	URL  string `binding:"required"           form:"url"  json:"url"`
	Code string `binding:"omitempty,shortcode" form:"code" json:"code"`
}

// registerValidators регистрирует тег shortcode в валидаторе gin.
func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}
	err := v.RegisterValidation("shortcode", func(fl validator.FieldLevel) bool {
		return codes.Validate(fl.Field().String())
	})
	if err != nil {
		return errors.Wrap(err, "register shortcode validation")
	}
	return nil
}

func mustRegisterValidators() {
	registerOnce.Do(func() {
		if err := registerValidators(); err != nil {
			panic(err)
		}
	})
}

// bindingError переводит ошибку разбора/валидации тела в публичную ошибку.
// Ошибки url проверяются раньше ошибок кода, как и в сервисе.
func bindingError(err error) error {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return errors.Wrap(ErrBadRequest, err.Error())
	}
	var codeErr error
	for _, fe := range vErrs {
		switch fe.Field() {
		case "URL":
			return errors.Wrap(ErrURLRequired, fe.Error())
		case "Code":
			codeErr = errors.Wrap(ErrInvalidCode, fe.Error())
		}
	}
	if codeErr != nil {
		return codeErr
	}
	return errors.Wrap(ErrBadRequest, vErrs.Error())
}
