// stockbot - WhatsApp order and inventory responder
// Copyright (C) 2026  nexus contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.

package handlers

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jredh-dev/stockbot/internal/token"
	"github.com/jredh-dev/stockbot/internal/twilio"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// ClaimsContextKey stores the validated API token claims in request context.
const ClaimsContextKey contextKey = "claims"

// TwilioSignature rejects webhook requests that were not signed with
// authToken. Requests other than POST pass through so the handler can answer
// them with 405. baseURL is the public URL Twilio is configured with; when
// empty the URL is rebuilt from the request.
func TwilioSignature(authToken, baseURL string, log *zap.Logger) func(http.Handler) http.Handler {
	validator := twilio.NewValidator(authToken)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}
			if err := parseWebhookForm(r); err != nil {
				log.Warn("unreadable webhook form", zap.Error(err))
			}

			fullURL := requestURL(r, baseURL)
			if !validator.Valid(fullURL, r.PostForm, r.Header.Get(twilio.SignatureHeader)) {
				log.Warn("rejected unsigned webhook", zap.String("url", fullURL))
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestURL(r *http.Request, baseURL string) string {
	if baseURL != "" {
		return strings.TrimSuffix(baseURL, "/") + r.URL.RequestURI()
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}

// BearerAuth requires a valid API token in the Authorization header.
func BearerAuth(tokens *token.Service, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				w.Header().Set("WWW-Authenticate", "Bearer")
				jsonError(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Validate(strings.TrimSpace(raw))
			if err != nil {
				log.Warn("rejected api token", zap.Error(err))
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				jsonError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the API token claims set by BearerAuth.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*token.Claims)
	return claims, ok
}
