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

// Package chat turns inbound message text into a reply: it classifies the
// text into an intent, runs the matching lookup and formats the answer.
package chat

import (
	"strings"
)

// Intent is the classified purpose of an inbound message.
type Intent string

const (
	IntentOrder     Intent = "order"
	IntentInventory Intent = "inventory"
	IntentLowStock  Intent = "low-stock"
	IntentHelp      Intent = "help"
	IntentUnknown   Intent = "unknown"
)

// Message is a classified inbound message. Argument is empty when the intent
// takes none; for order and inventory it is never empty.
type Message struct {
	Intent   Intent
	Argument string
}

const (
	orderPrefix     = "order "
	inventoryPrefix = "inventory "
)

// Parse classifies raw message text. Matching is case-insensitive; Argument
// keeps the casing of the input. Parse never fails: anything it does not
// recognise is IntentUnknown.
func Parse(raw string) Message {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Message{Intent: IntentUnknown}
	}
	lower := strings.ToLower(text)

	if arg, ok := cutKeyword(text, orderPrefix); ok {
		if arg == "" {
			return Message{Intent: IntentHelp}
		}
		return Message{Intent: IntentOrder, Argument: arg}
	}
	if arg, ok := cutKeyword(text, inventoryPrefix); ok {
		if arg == "" {
			return Message{Intent: IntentHelp}
		}
		return Message{Intent: IntentInventory, Argument: arg}
	}

	switch lower {
	case "low stock", "list low stock":
		return Message{Intent: IntentLowStock}
	case "help", "menu", "start":
		return Message{Intent: IntentHelp}
	}

	if isDigits(text) {
		return Message{Intent: IntentOrder, Argument: text}
	}

	return Message{Intent: IntentUnknown, Argument: text}
}

// cutKeyword reports whether text starts with prefix, ignoring case, and
// returns the trimmed remainder. The bare keyword without a trailing argument
// also matches with an empty remainder, since trimming the input removes the
// space that would otherwise follow it.
func cutKeyword(text, prefix string) (string, bool) {
	if strings.EqualFold(text, strings.TrimSuffix(prefix, " ")) {
		return "", true
	}
	if len(text) < len(prefix) || !strings.EqualFold(text[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(text[len(prefix):]), true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
