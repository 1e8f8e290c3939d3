// Package update performs the optional remote version check. It is best
// effort: no network, a slow server, or an unparseable response all degrade
// to "check skipped", never to a hang or a startup failure.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Version is the running application version.
const Version = "0.4.1"

const DefaultEndpoint = "https://api.github.com/repos/kanbo-app/kanbo/releases/latest"

const DefaultTimeout = 5 * time.Second

// Check fetches the latest published version string. The response may be a
// GitHub release object, a {"version": ...} document, or plain text.
func Check(ctx context.Context, endpoint string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("version check: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	return ParseResponse(body)
}

func ParseResponse(body []byte) (string, error) {
	var doc struct {
		TagName string `json:"tag_name"`
		Version string `json:"version"`
	}
	if err := json.Unmarshal(body, &doc); err == nil {
		if doc.TagName != "" {
			return normalize(doc.TagName), nil
		}
		if doc.Version != "" {
			return normalize(doc.Version), nil
		}
	}
	text := normalize(string(body))
	if text == "" {
		return "", fmt.Errorf("version check: empty response")
	}
	return text, nil
}

func normalize(v string) string {
	return strings.TrimPrefix(strings.TrimSpace(v), "v")
}

// IsNewer compares dotted numeric versions; non-numeric segments compare as
// strings so odd tags still order deterministically.
func IsNewer(latest, current string) bool {
	ls := strings.Split(normalize(latest), ".")
	cs := strings.Split(normalize(current), ".")
	for i := 0; i < len(ls) || i < len(cs); i++ {
		var l, c string
		if i < len(ls) {
			l = ls[i]
		}
		if i < len(cs) {
			c = cs[i]
		}
		ln, lerr := strconv.Atoi(l)
		cn, cerr := strconv.Atoi(c)
		if lerr == nil && cerr == nil {
			if ln != cn {
				return ln > cn
			}
			continue
		}
		if l != c {
			return l > c
		}
	}
	return false
}
