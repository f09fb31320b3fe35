package logx

const (
	FieldAppName         = "app-name"
	FieldAppVersion      = "app-version"
	FieldBorough         = "borough"
	FieldDurationMs      = "duration-ms"
	FieldError           = "error"
	FieldHTTPMethod      = "http-method"
	FieldHTTPRequest     = "http-request"
	FieldHTTPResponse    = "http-response"
	FieldIP              = "ip"
	FieldLatestSeq       = "latest-seq"
	FieldMode            = "mode"
	FieldRequestBody     = "request-body"
	FieldRequestID       = "request-id"
	FieldResponseBody    = "response-body"
	FieldResponseHeaders = "response-headers"
	FieldResponseStatus  = "response-status"
	FieldRows            = "rows"
	FieldSeq             = "seq"
	FieldSessionID       = "session-id"
	FieldStack           = "stack"
	FieldTraceID         = "trace-id"
	FieldURL             = "url"
)
