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

// tokenctl mints bearer tokens for the stockbot lookup API.
//
//	tokenctl -client warehouse-dashboard -ttl 720h
//	tokenctl -gen-key
//
// The signing key and issuer come from API_SIGNING_KEY and API_TOKEN_ISSUER,
// the same variables the server reads.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jredh-dev/stockbot/config"
	"github.com/jredh-dev/stockbot/internal/token"
)

func main() {
	client := flag.String("client", "", "Name of the API client the token is for")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "Token lifetime")
	genKey := flag.Bool("gen-key", false, "Print a new random signing key and exit")
	flag.Parse()

	if *genKey {
		key, err := token.GenerateSigningKey()
		if err != nil {
			fatalf("%v", err)
		}
		fmt.Println(key)
		return
	}

	cfg := config.Load()
	if cfg.API.SigningKey == "" {
		fatalf("API_SIGNING_KEY is not set")
	}
	if *client == "" {
		fatalf("-client is required")
	}

	tok, err := token.New(cfg.API.SigningKey, cfg.API.Issuer).Issue(*client, *ttl)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Println(tok)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "tokenctl: "+format+"\n", args...)
	os.Exit(1)
}
