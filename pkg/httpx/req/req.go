package req

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"treehealth/pkg/errcodes"
)

const maxBodyBytes = 64 << 10

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	validate = newValidator()                               //nolint:gochecknoglobals // skip
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields the way clients send them
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Read decodes a JSON body into dest and validates it. An empty body leaves
// dest untouched.
func Read(r *http.Request, dest any) error {
	err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes)).Decode(dest)
	if err != nil && !errors.Is(err, io.EOF) {
		return failure.NewInvalidArgumentError(
			fmt.Errorf("json.Decode: %w", err).Error(),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("Invalid JSON"),
		)
	}

	return Validate(r, dest)
}

// Validate checks struct tags of an already decoded request.
func Validate(r *http.Request, dest any) error {
	err := validate.StructCtx(r.Context(), dest)
	if err == nil {
		return nil
	}

	return failure.NewInvalidArgumentError(
		"validation error",
		failure.WithCode(errcodes.ValidationError),
		failure.WithDescription(describe(err)),
	)
}

func describe(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}

	messages := make([]string, 0, len(fieldErrs))

	for _, fe := range fieldErrs {
		if fe.Tag() == "oneof" {
			messages = append(messages, fmt.Sprintf("%s: %q is not one of %s", fe.Field(), fe.Value(), fe.Param()))

			continue
		}

		messages = append(messages, fmt.Sprintf("%s: failed %q check", fe.Field(), fe.Tag()))
	}

	return strings.Join(messages, "; ")
}
