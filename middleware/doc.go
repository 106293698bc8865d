// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers for the
Ballot Box API.

  - WithLogging: request/response logging via slog
  - CORS: cross-origin support for the web frontend
  - RequireUser / RequireAdmin: bearer-token authentication, placing the
    account in the request context (retrieved with UserFrom)
  - JSONResponse / ErrorResponse / CodedErrorResponse: response helpers;
    coded errors carry a stable code plus its localized message
*/
package middleware
