package hydrate

import (
	"net/url"
	"strings"

	"rasosehat-backend/internal/model"
)

// Config carries the storage deployment the hydrator resolves photo keys
// against.
type Config struct {
	StorageOrigin string // e.g. https://abcdefg.supabase.co
	Bucket        string // public bucket name
}

// ResolvePhoto turns the stored photo columns into a public URL and a
// provider tag. Precedence: the new-style stored path first, the legacy
// inline column second. A value that is already an absolute URL is used
// verbatim; a bare storage key is expanded through the public-object URL
// template without any network round trip. Values that look like local
// filesystem paths are never exposed; the result is nil instead.
func (c Config) ResolvePhoto(storedPath, legacy string) (*string, string) {
	if resolved, provider, ok := c.resolveOne(storedPath); ok {
		return resolved, provider
	}
	if resolved, provider, ok := c.resolveOne(legacy); ok {
		return resolved, provider
	}
	return nil, ""
}

func (c Config) resolveOne(value string) (*string, string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, "", false
	}

	if isAbsoluteURL(value) {
		provider := model.ProviderExternal
		if c.StorageOrigin != "" && strings.HasPrefix(value, c.StorageOrigin) {
			provider = model.ProviderSupabase
		}
		return &value, provider, true
	}

	if isLocalPath(value) {
		// A bare filesystem path is unresolvable; report it handled so the
		// legacy column does not leak either.
		return nil, "", true
	}

	if c.StorageOrigin == "" || c.Bucket == "" {
		return nil, "", true
	}

	resolved := c.StorageOrigin + "/storage/v1/object/public/" + c.Bucket + "/" + escapeKey(value)
	return &resolved, model.ProviderSupabase, true
}

func isAbsoluteURL(value string) bool {
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return false
	}
	parsed, err := url.Parse(value)
	return err == nil && parsed.Host != ""
}

func isLocalPath(value string) bool {
	return strings.HasPrefix(value, "/") ||
		strings.HasPrefix(value, ".") ||
		strings.Contains(value, "\\")
}

// escapeKey URL-encodes each segment of a storage key while keeping the
// slashes that separate them.
func escapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
