package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lintang-b-s/Bollardx/pkg"
	"github.com/lintang-b-s/Bollardx/pkg/datastructure"
	"github.com/lintang-b-s/Bollardx/pkg/util"
	"go.uber.org/zap"
)

func (api *bollardAPI) writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func (api *bollardAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string,
	fields map[string]string) {
	var res errorResponse
	res.Error.Code = http.StatusText(status)
	res.Error.Message = message
	res.Error.Fields = fields

	headers := make(http.Header)
	if status == http.StatusServiceUnavailable {
		headers.Set("Retry-After", "1")
	}
	if err := api.writeJSON(w, status, res, headers); err != nil {
		api.log.Error("failed to write error response", zap.String("path", r.URL.Path), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (api *bollardAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, err.Error(), nil)
}

func (api *bollardAPI) FailedValidationResponse(w http.ResponseWriter, r *http.Request, fields map[string]string) {
	api.errorResponse(w, r, http.StatusBadRequest, "validation error", fields)
}

func (api *bollardAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Error("internal server error", zap.String("method", r.Method), zap.String("path", r.URL.Path),
		zap.Error(err))
	api.errorResponse(w, r, http.StatusInternalServerError, util.MessageInternalServerError, nil)
}

// getStatusCode. maps the code of a util.Error to the response status
func (api *bollardAPI) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	var ierr *util.Error
	if !errors.As(err, &ierr) {
		api.ServerErrorResponse(w, r, err)
		return
	}

	switch ierr.Code() {
	case util.ErrBadParamInput:
		api.errorResponse(w, r, http.StatusBadRequest, ierr.Message(), nil)
	case util.ErrNotFound:
		api.errorResponse(w, r, http.StatusNotFound, ierr.Message(), nil)
	case util.ErrServiceUnavailable:
		api.log.Warn("query not served", zap.String("path", r.URL.Path), zap.Error(err))
		api.errorResponse(w, r, http.StatusServiceUnavailable, ierr.Message(), nil)
	default:
		api.ServerErrorResponse(w, r, err)
	}
}

// newValidator. validator reporting json field names, with english translations for the
// weekday & clocktime tags.
func newValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		_, ok := pkg.GetWeekday(fl.Field().String())
		return ok
	})
	_ = validate.RegisterValidation("clocktime", func(fl validator.FieldLevel) bool {
		_, err := datastructure.ParseClockTime(fl.Field().String())
		return err == nil
	})

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)
	registerTranslation(validate, trans, "weekday",
		"{0} must be a day of the week (mon..sun or ma..zo)")
	registerTranslation(validate, trans, "clocktime",
		"{0} must be a time of day formatted as HH:MM or HH:MM:SS")

	return validate, trans
}

func registerTranslation(validate *validator.Validate, trans ut.Translator, tag, text string) {
	_ = validate.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, fe.Field())
			return t
		})
}

// translateError. one translated message per invalid field
func translateError(err error, trans ut.Translator) map[string]string {
	fields := make(map[string]string)
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		fields["request"] = err.Error()
		return fields
	}
	for _, e := range validationErrs {
		fields[e.Field()] = e.Translate(trans)
	}
	return fields
}
