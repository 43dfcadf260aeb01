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

package chat

// HelpText lists the commands the bot understands. It is returned unchanged
// for every help request.
const HelpText = "I can help with:\n" +
	"• order <order id> → Status, ETA and customer info.\n" +
	"• inventory <sku or name> → Stock levels and location.\n" +
	"• list low stock → Items below the configured threshold.\n" +
	"Update the Orders and Inventory sheets in Google Sheets to control responses."

// FallbackText answers messages that match no command. The sender's text is
// never echoed back.
const FallbackText = "Sorry, I did not recognise that.\n\n" + HelpText

// Fixed replies sent when a lookup cannot reach its data source.
const (
	OrdersUnavailableText    = "Sorry, I could not reach the orders sheet."
	InventoryUnavailableText = "Sorry, I could not reach the inventory sheet."
)
