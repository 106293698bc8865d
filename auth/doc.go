// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth implements accounts and sessions for the Ballot Box API.

# Sign-in Methods

  - Email/password: argon2id hashes, with a per-email throttle on failed
    attempts.
  - Google: the web client obtains an ID token via the sign-in popup and
    posts it here; the server verifies it against Google's keys for the
    configured OAuth client ID.
  - Anonymous: a throwaway guest account with no email and no voting
    rights, for browsing polls and results.

An email can hold both methods. The conflict rules mirror each other:
registering a password for a Google-only email fails with
ErrEmailRegisteredWithGoogle, and Google sign-in for a password-only email
fails with AccountExistsError (carrying the email) so the client can run the
linking flow, which proves password ownership before attaching the Google
identity.

# Sessions

Sessions are an HS256 JWT access token plus an opaque rotating refresh
token stored server-side. Logout revokes the refresh token; access tokens
are short-lived and simply expire.
*/
package auth
