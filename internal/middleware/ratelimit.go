package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/banquet-booking/internal/config"
)

// bucketScript takes one token from the bucket at KEYS[1], refilling it
// for every whole interval elapsed since the last refill.
// ARGV: now_ms, capacity, refill_tokens, interval_ms, ttl_seconds.
// Returns {allowed, tokens_left, retry_after_ms}.
var bucketScript = redis.NewScript(`
local key = KEYS[1]
local now, capacity = tonumber(ARGV[1]), tonumber(ARGV[2])
local refill, interval, ttl = tonumber(ARGV[3]), tonumber(ARGV[4]), tonumber(ARGV[5])

local tokens = tonumber(redis.call('HGET', key, 'tokens'))
local last = tonumber(redis.call('HGET', key, 'refilled_ms'))
if tokens == nil or last == nil then
  tokens, last = capacity, now
end

local steps = math.floor(math.max(0, now - last) / interval)
if steps > 0 then
  tokens = math.min(capacity, tokens + steps * refill)
  last = last + steps * interval
end

local allowed, wait = 0, 0
if tokens > 0 then
  allowed, tokens = 1, tokens - 1
else
  wait = math.max(0, interval - (now - last))
end

redis.call('HSET', key, 'tokens', tokens, 'refilled_ms', last)
redis.call('EXPIRE', key, ttl)
return {allowed, tokens, wait}
`)

// maxAccountPeek bounds how much of a login body is read to find the name.
const maxAccountPeek = 4 << 10

type verdict struct {
	allowed   bool
	remaining int64
	retryMs   int64
}

// NewTokenBucket throttles the unauthenticated auth routes with token
// buckets kept in Redis, so the limit holds across instances.  Every
// request draws from its IP+route bucket; with PerAccount set, a login also
// draws from a bucket keyed by the submitted name.  A nil client or a
// Redis error lets the request through.
func NewTokenBucket(cfg config.RateLimitConfig, rdb redis.Scripter) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	log := logrus.WithField("component", "ratelimit")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			keys := []string{routeKey(cfg, c)}
			if cfg.PerAccount && strings.HasSuffix(c.Path(), "/login") {
				if name := accountName(c); name != "" {
					keys = append(keys, cfg.Prefix+":account:"+name)
				}
			}

			out := verdict{allowed: true, remaining: int64(cfg.Capacity)}
			for _, key := range keys {
				v, err := take(c, rdb, cfg, key)
				if err != nil {
					log.WithError(err).WithField("key", key).Warn("bucket unavailable; request let through")
					return next(c)
				}
				out.remaining = min(out.remaining, v.remaining)
				if !v.allowed {
					out.allowed = false
					out.retryMs = max(out.retryMs, v.retryMs)
				}
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(out.remaining, 10))
			if out.allowed {
				return next(c)
			}

			secs := int(math.Ceil(float64(out.retryMs) / 1000))
			h.Set("Retry-After", strconv.Itoa(secs))
			log.WithFields(logrus.Fields{"keys": keys, "retry_ms": out.retryMs}).Info("rate limited")
			return c.JSON(http.StatusTooManyRequests, echo.Map{
				"error":       "too_many_requests",
				"message":     "rate limit exceeded",
				"retry_after": secs,
			})
		}
	}
}

func take(c echo.Context, rdb redis.Scripter, cfg config.RateLimitConfig, key string) (verdict, error) {
	res, err := bucketScript.Run(c.Request().Context(), rdb, []string{key},
		time.Now().UnixMilli(),
		cfg.Capacity,
		cfg.RefillTokens,
		cfg.RefillInterval.Milliseconds(),
		int64(cfg.TTL/time.Second),
	).Int64Slice()
	if err != nil {
		return verdict{}, err
	}
	if len(res) != 3 {
		return verdict{}, fmt.Errorf("unexpected bucket reply %v", res)
	}
	return verdict{allowed: res[0] == 1, remaining: res[1], retryMs: res[2]}, nil
}

// routeKey is <prefix>:ip:<ip>, plus :route:<method path> unless the
// strategy is "ip".
func routeKey(cfg config.RateLimitConfig, c echo.Context) string {
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	key := cfg.Prefix + ":ip:" + ip
	if cfg.KeyStrategy == "ip" {
		return key
	}
	return key + ":route:" + c.Request().Method + " " + c.Path()
}

// accountName reads the "name" field of a JSON login body and puts the body
// back for the handler.
func accountName(c echo.Context) string {
	req := c.Request()
	if req.Body == nil {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(req.Body, maxAccountPeek))
	req.Body = io.NopCloser(io.MultiReader(bytes.NewReader(raw), req.Body))
	if err != nil {
		return ""
	}
	var body struct {
		Name string `json:"name"`
	}
	if json.Unmarshal(raw, &body) != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(body.Name))
}
