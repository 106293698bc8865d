// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain types and HTTP request/response types for
the Ballot Box API.

# Domain Types

  - User: an account with email/password and/or Google sign-in
  - Poll: an election window with an ordered candidate list and a
    scheduled → active → completed status
  - Candidate: a person on a ballot, with biography, proposals, social
    links, and an optional photo
  - Vote: an immutable (user, poll, candidate) fact; at most one per
    (user, poll) pair

# Poll Status

A poll's stored status may lag wall-clock time; the lifecycle package
computes the effective status and writes corrections back. Status strings
are the StatusScheduled/StatusActive/StatusCompleted constants.
*/
package models
