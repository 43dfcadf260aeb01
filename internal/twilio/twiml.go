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

// Package twilio encodes TwiML replies and verifies that webhook requests
// were signed by Twilio, on top of the twilio-go helper library.
package twilio

import (
	"fmt"

	"github.com/twilio/twilio-go/twiml"
)

// ContentType is the media type Twilio expects for TwiML responses.
const ContentType = "text/xml"

// MessagingResponse renders a TwiML document that replies with one message
// per entry in texts. Text is XML-escaped.
func MessagingResponse(texts ...string) ([]byte, error) {
	verbs := make([]twiml.Element, 0, len(texts))
	for _, text := range texts {
		verbs = append(verbs, &twiml.MessagingMessage{Body: text})
	}
	doc, err := twiml.Messages(verbs)
	if err != nil {
		return nil, fmt.Errorf("encode twiml: %w", err)
	}
	return []byte(doc), nil
}
