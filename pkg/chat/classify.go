package chat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// errorEnvelope is the loosely typed error body. Any field may be a string,
// an object or a list depending on which backend layer produced it.
type errorEnvelope struct {
	Detail     json.RawMessage `json:"detail"`
	Error      json.RawMessage `json:"error"`
	Message    json.RawMessage `json:"message"`
	Code       json.RawMessage `json:"code"`
	RetryAfter json.RawMessage `json:"retry_after"`
}

// quotaCodes are the structured error codes that mean "out of quota".
var quotaCodes = map[string]bool{
	"quota_exceeded":     true,
	"rate_limited":       true,
	"resource_exhausted": true,
	"429":                true,
}

// retryDelayPattern matches both "retry_delay: 30" and the upstream
// protobuf text form "retry_delay { seconds: 30 }".
var retryDelayPattern = regexp.MustCompile(`(?i)retry_delay\s*[:{]?\s*(?:seconds\s*:\s*)?(\d+)`)

// ExtractDetail returns the human-readable description of an error body:
// the first present of detail, error and message, or the raw body text
// when the body is not a JSON object carrying any of them.
func ExtractDetail(body []byte) string {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		for _, raw := range []json.RawMessage{env.Detail, env.Error, env.Message} {
			if s := rawText(raw); s != "" {
				return s
			}
		}
	}
	return strings.TrimSpace(string(body))
}

// rawText flattens a JSON value into display text. Strings are used as-is,
// objects with a "message" string yield that message, anything else is
// re-encoded compactly.
func rawText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && strings.TrimSpace(obj.Message) != "" {
		return strings.TrimSpace(obj.Message)
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err == nil {
		return compact.String()
	}
	return string(raw)
}

// NewServerError builds a ServerError from a non-2xx response.
func NewServerError(status int, header http.Header, body []byte) *ServerError {
	se := &ServerError{
		Status: status,
		Detail: ExtractDetail(body),
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		se.Code = rawText(env.Code)
		if secs, ok := parseSeconds(rawText(env.RetryAfter)); ok {
			se.RetryAfter = secs
		}
	}
	if se.RetryAfter == 0 && header != nil {
		if secs, ok := parseSeconds(header.Get("Retry-After")); ok {
			se.RetryAfter = secs
		}
	}
	if se.RetryAfter == 0 {
		se.RetryAfter = ParseRetryDelay(se.Detail)
	}
	return se
}

// Classify upgrades a ServerError to a QuotaError when it describes a
// quota or rate-limit condition, and returns it unchanged otherwise.
func Classify(se *ServerError) error {
	if IsQuota(se.Status, se.Code, se.Detail) {
		return &QuotaError{Server: se}
	}
	return se
}

// IsQuota reports whether an error response is a quota condition.
// A structured code decides on its own; the keyword heuristic only runs
// for bodies that carry no code.
func IsQuota(status int, code, detail string) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	if code = strings.ToLower(strings.TrimSpace(code)); code != "" {
		return quotaCodes[code]
	}
	d := strings.ToLower(detail)
	return strings.Contains(d, "quota") ||
		strings.Contains(d, "rate limit") ||
		strings.Contains(d, "429")
}

// ParseRetryDelay extracts the retry_delay hint from free-form error text.
func ParseRetryDelay(detail string) time.Duration {
	m := retryDelayPattern.FindStringSubmatch(detail)
	if m == nil {
		return 0
	}
	secs, ok := parseSeconds(m[1])
	if !ok {
		return 0
	}
	return secs
}

func parseSeconds(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	return time.Duration(f * float64(time.Second)), true
}

// QuotaMessage is the friendly text shown instead of a raw quota error.
func QuotaMessage(svc ServiceInfo, retryAfter time.Duration) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s has used up its AI quota for the moment.\n", svc.Name)
	if retryAfter > 0 {
		fmt.Fprintf(&sb, "Please try again in %ds.\n", int(math.Ceil(retryAfter.Seconds())))
	} else {
		sb.WriteString("Please try again in a few minutes.\n")
	}

	var contacts []string
	if svc.ContactURL != "" {
		contacts = append(contacts, svc.ContactURL)
	}
	if svc.ContactEmail != "" {
		contacts = append(contacts, svc.ContactEmail)
	}
	if len(contacts) > 0 {
		fmt.Fprintf(&sb, "Need a hand sooner? Reach us at %s", strings.Join(contacts, " or "))
	}
	return strings.TrimRight(sb.String(), "\n")
}
