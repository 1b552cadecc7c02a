package service

import (
	"os"
	"strings"
	"sync"

	"github.com/graniteware/storefront/pkg/errors"
)

// templateCache holds the inquiry template after its first successful
// read. The template is a static asset, so no invalidation is needed; a
// failed read is not cached so a later submission can succeed once the
// file is back.
type templateCache struct {
	mu     sync.Mutex
	body   string
	loaded bool
}

func (c *templateCache) load(path string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.body, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", &errors.ErrTemplateUnavailable{Path: path, Err: err}
	}

	// The template carries exactly four %s substitution slots. Any other
	// percent sign is literal text ("10% off") and must not be read as a
	// format verb.
	body := strings.ReplaceAll(string(raw), "%", "%%")
	body = strings.ReplaceAll(body, "%%s", "%s")

	c.body = body
	c.loaded = true
	return c.body, nil
}
