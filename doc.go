// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ballotbox API server.

Ballotbox runs a single election as a six-phase workflow: whitelist voters,
collect proposals, take votes, tally, and (when desired) reset for a new
cycle. An administrator drives the workflow; registered voters propose and
vote with tokens issued at registration.

# Starting the Server

The server reads configuration from environment variables (including a
.env file), or CLI flags:

	DATABASE_URL=ballotbox.db ADMIN_KEY_SALT=... VOTER_TOKEN_SALT=... go run main.go

Or with flags:

	go run main.go -p 3318 -t sqlite -d ballotbox.db

The admin key for the bootstrapped election is logged at startup.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC
  - VOTER_TOKEN_SALT (--voter-salt): Secret for voter token HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"

# Architecture

The server uses a handler-based architecture with dependency injection:

  - election: the workflow state machine owning all election state
  - events: in-process notification fan-out
  - handlers: HTTP request handlers (admin, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Key and token generation and validation
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
