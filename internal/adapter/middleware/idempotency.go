package middleware

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	// A claimed key expires after this long if the handler never finishes.
	provisionalLockTTL = 60 * time.Second
	// Ax-Request-At may differ from server time (UTC) by at most this much.
	maxClockSkew = 10 * time.Minute
	// Budget for each Redis round trip made by the middleware.
	storeTimeout = 2 * time.Second
)

// idempEntry is the JSON value stored under an idempotency key.
type idempEntry struct {
	InProgress  bool      `json:"in_progress"`
	Code        int       `json:"code"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	RequestAtMS int64     `json:"request_at_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// captureWriter tees the response so it can be replayed.
type captureWriter struct {
	w    http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (cw *captureWriter) Header() http.Header { return cw.w.Header() }
func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.w.Write(b)
}
func (cw *captureWriter) WriteHeader(code int) { cw.code = code; cw.w.WriteHeader(code) }

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}

// IdempotencyMiddleware makes POST/PUT/PATCH/DELETE safe to retry. It must run
// after JWTAuth: the key is method + route + caller user id + Ax-Request-Id.
// A retry with the same body gets the stored response; a different body or a
// retry while the first call is still running gets 409.
//
// Ax-Request-At is epoch seconds/milliseconds or RFC 3339 with an explicit zone.
func IdempotencyMiddleware(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			caller, authed := PrincipalFrom(c)
			if !authed || caller.UserID == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}

			reqID := strings.TrimSpace(req.Header.Get("Ax-Request-Id"))
			if reqID == "" {
				return badRequest(c, "missing Ax-Request-Id")
			}
			if !validReqID(reqID) {
				return badRequest(c, "invalid Ax-Request-Id format")
			}
			sentAt, err := parseAxRequestAt(req.Header.Get("Ax-Request-At"))
			if err != nil {
				return badRequest(c, err.Error())
			}
			if now := nowUTC(); sentAt.Before(now.Add(-maxClockSkew)) || sentAt.After(now.Add(maxClockSkew)) {
				return badRequest(c, "Ax-Request-At too skewed")
			}

			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewReader(body))
			digest := bodyHash(body)

			key := buildKey(req.Method, c.Path(), caller.UserID, reqID)
			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()

			claimed, err := provisionalSet(ctx, rdb, key, idempEntry{
				InProgress:  true,
				BodySHA256:  digest,
				RequestID:   reqID,
				RequestAtMS: sentAt.UnixMilli(),
				CreatedAt:   nowUTC(),
			})
			if err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "idempotency store unavailable"})
			}
			if !claimed {
				return replay(ctx, c, rdb, key, digest)
			}

			cw := &captureWriter{w: c.Response().Writer, code: http.StatusOK}
			c.Response().Writer = cw
			if err := next(c); err != nil {
				c.Error(err)
			}

			saveCtx, saveCancel := context.WithTimeout(context.Background(), storeTimeout)
			defer saveCancel()
			if err := saveFinal(saveCtx, rdb, key, idempEntry{
				Code:        cw.code,
				Body:        cw.buf.Bytes(),
				BodySHA256:  digest,
				RequestID:   reqID,
				RequestAtMS: sentAt.UnixMilli(),
				CreatedAt:   nowUTC(),
			}, ttl); err != nil {
				log.Printf("idempotency: save %s: %v", key, err)
			}
			return nil
		}
	}
}

// replay answers a request whose key was already claimed.
func replay(ctx context.Context, c echo.Context, rdb *redis.Client, key, digest string) error {
	prev, err := loadEntry(ctx, rdb, key)
	if err != nil {
		log.Printf("idempotency: load %s: %v", key, err)
	}
	if prev.BodySHA256 != "" && prev.BodySHA256 != digest {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Ax-Request-Id reused with different body"})
	}
	if !prev.InProgress && prev.Code != 0 && len(prev.Body) > 0 {
		return c.Blob(prev.Code, echo.MIMEApplicationJSON, prev.Body)
	}
	return c.JSON(http.StatusConflict, map[string]string{"error": "request is already in progress"})
}
