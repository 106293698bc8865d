// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse parses server configuration from CLI flags with
environment-variable fallbacks.

Required: DATABASE_URL (-d) and JWT_SECRET (--jwt-secret). Optional:
PORT (-p, default 8080), DATABASE_TYPE (-t, sqlite or postgres, default
sqlite), token lifetimes, GOOGLE_CLIENT_ID for Google sign-in, and the
S3_* settings for candidate photo uploads. Google sign-in and photo
uploads return errors at the endpoint when left unconfigured; everything
else works without them.
*/
package cliparse
