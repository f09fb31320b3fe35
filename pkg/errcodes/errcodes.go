package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// Dashboard.
	InvalidBorough      failure.ErrorCode = "InvalidBorough"
	InvalidAnalysisMode failure.ErrorCode = "InvalidAnalysisMode"
	FetchFailed         failure.ErrorCode = "FetchFailed"   // upstream call failed or timed out
	MalformedData       failure.ErrorCode = "MalformedData" // upstream table misses expected columns
	EmptyResult         failure.ErrorCode = "EmptyResult"   // nothing left to chart after filtering
	RenderFailed        failure.ErrorCode = "RenderFailed"
)
