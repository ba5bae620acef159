// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP API.

# Handlers

UserHandler covers registration and login:

	POST /token          - exchange credentials for a bearer token
	POST /users/         - register a new account
	GET  /users/me       - return the authenticated user

QuestionnaireHandler serves the catalog (bearer token required):

	GET /questionnaires/     - list questionnaires
	GET /questionnaires/{id} - questionnaire with its questions in
	                           priority order

ResponseHandler accepts submissions:

	POST /responses/ - submit answers for a questionnaire; a
	                   resubmission atomically replaces the prior
	                   response

AdminHandler serves reporting routes, all gated on is_admin:

	GET /admin/responses/             - every stored response
	GET /admin/users/{id}/responses   - responses for one user
	GET /admin/user-responses         - per-user response counts
	GET /admin/user-responses/{name}  - one user's answers with
	                                    question prompts

# Authentication

Protected handlers resolve the Authorization header themselves via
requireUser / requireAdmin rather than through middleware, so each
handler controls its own error responses. Failures map to:

	401 - missing, malformed, expired, or orphaned token
	403 - authenticated but not an admin (admin routes only)
*/
package handlers
