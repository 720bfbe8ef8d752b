package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/mrcdevv/autotech-sub000/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps the domain error taxonomy to HTTP status codes.
// Anything outside the taxonomy is a 500 with a generic message; the
// real error goes to the log, never to the client.
func respondError(c *gin.Context, err error) {
	var notFound *apierror.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, apierror.New(notFound.Error()))
		return
	}
	var business *apierror.BusinessError
	if errors.As(err, &business) {
		c.JSON(http.StatusBadRequest, apierror.New(business.Message))
		return
	}
	log.Error().Err(err).Str("path", c.FullPath()).Msg("error interno")
	c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
}

// parsePathID extracts and validates a UUID path parameter, writing the
// 400 response itself on failure.
func parsePathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}
