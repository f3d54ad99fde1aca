package asset

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const publicSegment = "/storage/v1/object/public/"

var whitespace = regexp.MustCompile(`\s+`)

// SanitizeName заменяет каждую серию пробельных символов одним дефисом.
func SanitizeName(name string) string {
	return whitespace.ReplaceAllString(name, "-")
}

// ObjectPath строит путь <userID>/<unixMillis>-<имя>.
func ObjectPath(userID string, at time.Time, name string) string {
	return fmt.Sprintf("%s/%d-%s", userID, at.UnixMilli(), SanitizeName(name))
}

// URLBuilder строит и разбирает публичные адреса объектов.
type URLBuilder struct {
	base string
}

func NewURLBuilder(baseURL string) URLBuilder {
	return URLBuilder{base: strings.TrimRight(baseURL, "/")}
}

// Prefix - общий префикс всех публичных адресов.
func (b URLBuilder) Prefix() string {
	return b.base + publicSegment
}

func (b URLBuilder) PublicURL(bucket, path string) string {
	return b.Prefix() + bucket + "/" + url.PathEscape(path)
}

// Parse возвращает (bucket, path). Префикс проверяется до любых других действий.
func (b URLBuilder) Parse(publicURL string) (string, string, error) {
	prefix := b.Prefix()
	if !strings.HasPrefix(publicURL, prefix) {
		return "", "", &MalformedURLError{URL: publicURL, Reason: "missing public prefix " + prefix}
	}

	rest := publicURL[len(prefix):]
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		rest = rest[:i]
	}

	decoded, err := url.PathUnescape(rest)
	if err != nil {
		return "", "", &MalformedURLError{URL: publicURL, Reason: err.Error()}
	}

	bucket, path, ok := strings.Cut(decoded, "/")
	if !ok || bucket == "" || path == "" {
		return "", "", &MalformedURLError{URL: publicURL, Reason: "expected <bucket>/<path>"}
	}

	return bucket, path, nil
}
