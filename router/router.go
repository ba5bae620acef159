// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/intake/cliparse"
	"github.com/danielhkuo/intake/handlers"
	"github.com/danielhkuo/intake/middleware"
)

// NewRouter creates the main application router with all routes registered.
// The {$} suffix pins collection routes to their exact trailing-slash path
// so they don't swallow the whole subtree.
func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	userHandler := handlers.NewUserHandler(db, cfg)
	questionnaireHandler := handlers.NewQuestionnaireHandler(db, cfg)
	responseHandler := handlers.NewResponseHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	// Access
	mux.HandleFunc("POST /token", middleware.WithLogging(userHandler.Login))
	mux.HandleFunc("POST /users", middleware.WithLogging(userHandler.CreateUser))
	mux.HandleFunc("POST /users/{$}", middleware.WithLogging(userHandler.CreateUser))
	mux.HandleFunc("GET /users/me", middleware.WithLogging(userHandler.GetMe))

	// Questionnaire catalog
	mux.HandleFunc("GET /questionnaires/{$}", middleware.WithLogging(questionnaireHandler.List))
	mux.HandleFunc("GET /questionnaires/{id}", middleware.WithLogging(questionnaireHandler.Get))

	// Submissions
	mux.HandleFunc("POST /responses/{$}", middleware.WithLogging(responseHandler.Submit))

	// Admin reporting
	mux.HandleFunc("GET /admin/responses/{$}", middleware.WithLogging(adminHandler.ListAll))
	mux.HandleFunc("GET /admin/users/{id}/responses", middleware.WithLogging(adminHandler.ByUser))
	mux.HandleFunc("GET /admin/user-responses", middleware.WithLogging(adminHandler.Counts))
	mux.HandleFunc("GET /admin/user-responses/{username}", middleware.WithLogging(adminHandler.Detail))

	// Health check
	mux.HandleFunc("GET /health", middleware.WithLogging(func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	}))

	return mux
}
