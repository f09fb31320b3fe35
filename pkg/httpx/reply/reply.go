package reply

import (
	"context"
	"errors"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"

	"treehealth/pkg/contextx"
	"treehealth/pkg/errcodes"
	"treehealth/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SupportID string `json:"supportId"`
}

func (e *errorResponse) WithDefaultCode(code failure.ErrorCode) {
	if e.Code == "" {
		e.Code = code.String()
	}
}

// codedError is implemented by domain errors that carry their own code.
type codedError interface {
	error
	ErrorCode() failure.ErrorCode
	Description() string
}

//nolint:gochecknoglobals
var statusByCode = map[failure.ErrorCode]int{
	errcodes.InvalidBorough:      http.StatusBadRequest,
	errcodes.InvalidAnalysisMode: http.StatusBadRequest,
	errcodes.ValidationError:     http.StatusBadRequest,
	errcodes.NotFound:            http.StatusNotFound,
	errcodes.EmptyResult:         http.StatusNotFound,
	errcodes.FetchFailed:         http.StatusBadGateway,
	errcodes.MalformedData:       http.StatusBadGateway,
	errcodes.TimeoutExceeded:     http.StatusGatewayTimeout,
}

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

func OK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

func JSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger(ctx).Error("json.Encode", logx.Error(err))
	}
}

// Blob writes a pre-rendered body such as a PNG image or an HTML page.
func Blob(ctx context.Context, w http.ResponseWriter, statusCode int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)

	if _, err := w.Write(body); err != nil {
		logger(ctx).Error("w.Write", logx.Error(err))
	}
}

func Error(ctx context.Context, w http.ResponseWriter, err error) {
	logger(ctx).Error("error", logx.Error(err))

	response := errorResponse{
		Code:      failure.Code(err).String(),
		Message:   failure.Description(err),
		SupportID: supportID(ctx),
	}

	var coded codedError

	switch {
	case failure.IsInvalidArgumentError(err):
		response.WithDefaultCode(errcodes.ValidationError)
		JSON(ctx, w, http.StatusBadRequest, response)
	case failure.IsNotFoundError(err):
		response.WithDefaultCode(errcodes.NotFound)
		JSON(ctx, w, http.StatusNotFound, response)
	case failure.IsUnprocessableEntityError(err):
		JSON(ctx, w, http.StatusUnprocessableEntity, response)
	case errors.As(err, &coded):
		response.Code = coded.ErrorCode().String()
		response.Message = coded.Description()

		status, ok := statusByCode[coded.ErrorCode()]
		if !ok {
			status = http.StatusInternalServerError
		}

		JSON(ctx, w, status, response)
	case errors.Is(err, context.DeadlineExceeded):
		response.Code = errcodes.TimeoutExceeded.String()
		JSON(ctx, w, http.StatusGatewayTimeout, response)
	default:
		response.WithDefaultCode(errcodes.InternalServerError)
		JSON(ctx, w, http.StatusInternalServerError, response)
	}
}

func supportID(ctx context.Context) string {
	traceID, err := contextx.TraceIDFromContext(ctx)
	if err != nil {
		return "unsupported"
	}

	return traceID.String()
}
