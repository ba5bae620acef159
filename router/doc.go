// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires HTTP routes to their handlers.

Uses Go 1.22+ http.ServeMux method and wildcard patterns:

	POST /token                       - login
	POST /users/                      - register
	GET  /users/me                    - current user
	GET  /questionnaires/             - list questionnaires
	GET  /questionnaires/{id}         - questionnaire detail
	POST /responses/                  - submit a response
	GET  /admin/responses/            - all responses (admin)
	GET  /admin/users/{id}/responses  - responses by user (admin)
	GET  /admin/user-responses        - response counts (admin)
	GET  /admin/user-responses/{username} - user report (admin)
	GET  /health                      - health check

Every route is wrapped with request logging. CORS is applied at the
server level in main, not per route.
*/
package router
