package services

import (
	"net/url"
	"strings"
)

// DefaultCallback is where login lands when no usable callbackUrl was given.
const DefaultCallback = "/products"

// SafeCallback keeps raw only when it is a same-site relative path.
func SafeCallback(raw string) string {
	if raw == "" {
		return DefaultCallback
	}
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return DefaultCallback
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return DefaultCallback
	}
	return raw
}

// LoginURL is the login page that returns to callback afterwards.
func LoginURL(callback string) string {
	return "/auth/login?callbackUrl=" + url.QueryEscape(SafeCallback(callback))
}
