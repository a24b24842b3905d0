package transport

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/wopr-network/wopr-go/core"
)

// maxErrorBody caps how much of a failed response is read.
const maxErrorBody = 64 << 10

// readErrorBody parses the error envelope of a failed response and closes
// its body. An empty or unreadable body, or one without an error envelope,
// yields the fallback envelope instead.
func readErrorBody(resp *http.Response) core.ErrorBody {
	fallback := core.FallbackErrorBody(resp.StatusCode, statusText(resp))
	if resp.Body == nil {
		return fallback
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return fallback
	}

	body, ok := core.ParseErrorBody(data)
	if !ok {
		return fallback
	}
	return body
}

// statusText returns the reason phrase the server sent, e.g. "Bad Gateway"
// from "502 Bad Gateway".
func statusText(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	text = strings.TrimSpace(text)
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}
