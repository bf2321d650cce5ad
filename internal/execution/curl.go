package execution

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// toCurl renders the request as an equivalent curl command
func toCurl(req *http.Request, body []byte) string {
	var b strings.Builder
	fmt.Fprintf(&b, "curl -X %s", req.Method)

	keys := make([]string, 0, len(req.Header))
	for key := range req.Header {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&b, " -H %s", shellQuote(key+": "+req.Header.Get(key)))
	}

	if len(body) > 0 {
		fmt.Fprintf(&b, " -d %s", shellQuote(string(body)))
	}

	fmt.Fprintf(&b, " %s", shellQuote(req.URL.String()))
	return b.String()
}

// shellQuote wraps s in single quotes, escaping embedded single quotes
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
