// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /{$}", middleware.WithLogging(logger, handler))

Logs method, path, remote address, status, and duration_ms once the handler
returns. Each response carries an X-Request-ID header.

# Recovery

Recover turns a handler panic into a logged 500 with a generic body.

# Login Gate

RequireLogin lets signed-in callers through and sends everyone else to the
login form with a flash and a ?next= back to where they were going:

	mux.HandleFunc("GET /shopping_list", middleware.RequireLogin(sessions, handler))

SafeRedirect only accepts local paths, so a crafted next cannot send the user
to another site.

# Bodies and Responses

ParseBody accepts JSON or url-encoded forms; form fields are matched by the
struct's json tags:

	var in models.StoreInput
	if err := middleware.ParseBody(w, r, &in); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view)
	middleware.ValidationResponse(w, verr)
*/
package middleware
