// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and request/response helpers.

# Request Logging

WithLogging wraps a handler and logs one line per request with method,
path, response status, duration, and remote address:

	mux.HandleFunc("POST /election/votes", middleware.WithLogging(handler.CastVote))

# JSON Helpers

JSONResponse and ErrorResponse write JSON bodies with the right headers:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusConflict, "already voted")

ParseJSONBody decodes a request body into a struct and closes the body:

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil { ... }

# CORS

CORS wraps the whole mux, reflects the request origin, and allows the
X-Admin-Key and X-Voter-Token headers used by the API.

# Client IP

GetClientIP resolves the caller's address through X-Forwarded-For and
X-Real-IP before falling back to RemoteAddr. Used to build the salted
vote IP hash; the raw address is never stored.
*/
package middleware
