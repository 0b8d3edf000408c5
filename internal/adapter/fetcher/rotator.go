package fetcher

import (
	"math/rand"
	"net/http"
	"net/url"
	"sync"
	"time"
)

var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
}

// Rotator hands out proxies in turn and user agents at random.
type Rotator struct {
	proxies    []string
	userAgents []string

	mu         sync.Mutex
	proxyIndex int
	rnd        *rand.Rand
}

// NewRotator builds a rotator over proxies (may be empty) and the given user
// agents, falling back to a built-in desktop set.
func NewRotator(proxies, userAgents []string) *Rotator {
	if len(userAgents) == 0 {
		userAgents = defaultUserAgents
	}
	return &Rotator{
		proxies:    proxies,
		userAgents: userAgents,
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Proxy returns the next proxy URL, or "" when none are configured.
func (m *Rotator) Proxy() string {
	if len(m.proxies) == 0 {
		return ""
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	proxy := m.proxies[m.proxyIndex]
	m.proxyIndex = (m.proxyIndex + 1) % len(m.proxies)
	return proxy
}

// UserAgent returns a random user agent string.
func (m *Rotator) UserAgent() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userAgents[m.rnd.Intn(len(m.userAgents))]
}

// ProxyFunc plugs the rotation into an http.Transport.
func (m *Rotator) ProxyFunc(*http.Request) (*url.URL, error) {
	p := m.Proxy()
	if p == "" {
		return nil, nil
	}
	return url.Parse(p)
}
