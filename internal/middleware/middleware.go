package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const RequestIDHeader = "X-Request-ID"

// Doer is the part of *fasthttp.Client the ranking client needs.
type Doer interface {
	Do(req *fasthttp.Request, resp *fasthttp.Response) error
	DoDeadline(req *fasthttp.Request, resp *fasthttp.Response, deadline time.Time) error
}

type requestIDDoer struct {
	next   Doer
	logger zerolog.Logger
}

// RequestID tags every outgoing request with an X-Request-ID and logs its start and completion.
// https://github.com/gin-contrib/requestid
func RequestID(logger zerolog.Logger) func(Doer) Doer {
	return func(next Doer) Doer {
		return &requestIDDoer{next: next, logger: logger}
	}
}

func (d *requestIDDoer) Do(req *fasthttp.Request, resp *fasthttp.Response) error {
	return d.do(req, resp, func() error { return d.next.Do(req, resp) })
}

func (d *requestIDDoer) DoDeadline(req *fasthttp.Request, resp *fasthttp.Response, deadline time.Time) error {
	return d.do(req, resp, func() error { return d.next.DoDeadline(req, resp, deadline) })
}

func (d *requestIDDoer) do(req *fasthttp.Request, resp *fasthttp.Response, call func() error) error {
	start := time.Now()

	requestID := string(req.Header.Peek(RequestIDHeader))
	if requestID == "" {
		requestID = uuid.New().String()
		req.Header.Set(RequestIDHeader, requestID)
	}

	loggerWithID := d.logger.With().Str("request_id", requestID).Logger()

	loggerWithID.Debug().
		Str("method", string(req.Header.Method())).
		Str("uri", req.URI().String()).
		Msg("request started")

	err := call()

	duration := time.Since(start)
	var event *zerolog.Event
	if err != nil {
		event = loggerWithID.Warn().Err(err)
	} else {
		event = loggerWithID.Info().Int("status", resp.StatusCode())
	}
	event.
		Str("method", string(req.Header.Method())).
		Str("uri", req.URI().String()).
		Int64("duration_ms", duration.Milliseconds()).
		Dur("duration", duration).
		Msg("request completed")

	return err
}
