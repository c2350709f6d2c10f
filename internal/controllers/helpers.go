package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultRequestTimeout = 3 * time.Second
)

// shortURL собирает короткую ссылку. Если baseURL не задан, адрес берется из запроса.
func shortURL(r *http.Request, baseURL, code string) string {
	if baseURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(baseURL, "/"), code)
	}
	var scheme = "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, r.Host, code)
}
