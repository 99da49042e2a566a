package booking

import (
	"net/http"
	"strings"
	"sync"
)

// SessionCookie is one stored cookie. Attributes from Set-Cookie (Path,
// Expires, ...) are dropped; the remote only needs name=value replayed.
type SessionCookie struct {
	Name  string
	Value string
}

// SessionJar owns the evolving set of session cookies replayed on every
// outbound call. At most one entry exists per cookie name: merging a cookie
// whose name is already stored replaces the value in place, a new name is
// appended. The jar is shared across all calls of a run, so access is
// serialized.
type SessionJar struct {
	mu      sync.Mutex
	cookies []SessionCookie
	index   map[string]int
}

// NewSessionJar returns an empty jar.
func NewSessionJar() *SessionJar {
	return &SessionJar{index: make(map[string]int)}
}

// Seed stores the given cookies in order, replacing any prior content.
func (j *SessionJar) Seed(cookies []SessionCookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.cookies = nil
	j.index = make(map[string]int, len(cookies))
	for _, ck := range cookies {
		j.setLocked(ck.Name, ck.Value)
	}
}

// Set stores a single cookie, last write wins.
func (j *SessionJar) Set(name, value string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.setLocked(name, value)
}

func (j *SessionJar) setLocked(name, value string) {
	if i, ok := j.index[name]; ok {
		j.cookies[i].Value = value
		return
	}
	j.index[name] = len(j.cookies)
	j.cookies = append(j.cookies, SessionCookie{Name: name, Value: value})
}

// Merge folds the Set-Cookie headers of a response into the jar. It is called
// on every response before the body is inspected, so later calls carry the
// freshest cookies even when the call itself failed.
func (j *SessionJar) Merge(res *http.Response) {
	if res == nil {
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	for _, ck := range res.Cookies() {
		if ck.Name == "" {
			continue
		}
		j.setLocked(ck.Name, ck.Value)
	}
}

// HeaderValue serializes the jar as the outbound Cookie header:
// name=value pairs joined by "; " in storage order.
func (j *SessionJar) HeaderValue() string {
	j.mu.Lock()
	defer j.mu.Unlock()

	pairs := make([]string, 0, len(j.cookies))
	for _, ck := range j.cookies {
		pairs = append(pairs, ck.Name+"="+ck.Value)
	}
	return strings.Join(pairs, "; ")
}
