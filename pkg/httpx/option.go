package httpx

type Option func(*LoggingRoundTripper)

func WithLogFieldMaxLen(logFieldMaxLen int) Option {
	return func(rt *LoggingRoundTripper) {
		rt.logFieldMaxLen = logFieldMaxLen
	}
}

func WithSensitiveDataMasker(sensitiveDataMasker sensitiveDataMasker) Option {
	return func(rt *LoggingRoundTripper) {
		rt.sensitiveDataMasker = sensitiveDataMasker
	}
}

// WithUserAgent sets User-Agent on outgoing requests that do not carry one.
func WithUserAgent(userAgent string) Option {
	return func(rt *LoggingRoundTripper) {
		rt.userAgent = userAgent
	}
}
