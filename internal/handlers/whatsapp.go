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

// Package handlers serves the Twilio WhatsApp webhook and the JSON lookup API.
package handlers

import (
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/jredh-dev/stockbot/internal/chat"
	"github.com/jredh-dev/stockbot/internal/metrics"
	"github.com/jredh-dev/stockbot/internal/store"
	"github.com/jredh-dev/stockbot/internal/twilio"
)

// maxWebhookBody bounds how much of an untyped webhook body is read.
const maxWebhookBody = 1 << 20

// emptyTwiML is sent if the reply cannot be encoded, so Twilio still gets a
// well-formed 200.
const emptyTwiML = `<?xml version="1.0" encoding="UTF-8"?>` + "\n<Response></Response>"

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	src       store.Source
	responder *chat.Responder
	log       *zap.Logger
}

// New creates a Handler answering from src.
func New(src store.Source, log *zap.Logger) *Handler {
	return &Handler{
		src:       src,
		responder: chat.NewResponder(src, log),
		log:       log,
	}
}

// WhatsApp handles incoming messages from Twilio.
// POST /api/whatsapp
//
// Twilio sends the webhook as form data. The reply is always a 200 with a
// TwiML body, including when the data source is down, so Twilio never
// retries or reports a delivery error to the sender.
func (h *Handler) WhatsApp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte("Method Not Allowed")) //nolint:errcheck
		return
	}

	if err := parseWebhookForm(r); err != nil {
		h.log.Warn("unreadable webhook form", zap.Error(err))
	}
	msg := chat.Parse(messageText(r.PostForm))
	metrics.MessagesTotal.WithLabelValues(string(msg.Intent)).Inc()

	h.log.Info("message received",
		zap.String("from", r.PostForm.Get("From")),
		zap.String("message_sid", r.PostForm.Get("MessageSid")),
		zap.String("intent", string(msg.Intent)),
	)

	reply := h.responder.Reply(r.Context(), msg)

	body, err := twilio.MessagingResponse(reply)
	if err != nil {
		h.log.Error("encode reply", zap.Error(err))
		body = []byte(emptyTwiML)
	}

	w.Header().Set("Content-Type", twilio.ContentType)
	w.WriteHeader(http.StatusOK)
	w.Write(body) //nolint:errcheck
}

// messageText reads the Body field, falling back to a lowercase body field.
// A present but empty Body still wins over the fallback.
func messageText(form url.Values) string {
	if v, ok := form["Body"]; ok && len(v) > 0 {
		return v[0]
	}
	return form.Get("body")
}

// parseWebhookForm fills r.PostForm. A body sent without a Content-Type is
// still decoded as form data.
func parseWebhookForm(r *http.Request) error {
	if r.PostForm == nil && r.Header.Get("Content-Type") == "" && r.Body != nil {
		r.PostForm = url.Values{}
		raw, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			return err
		}
		// Pairs that decode cleanly are kept, as ParseForm does.
		r.PostForm, err = url.ParseQuery(string(raw))
		if err != nil {
			return err
		}
	}
	return r.ParseForm()
}
