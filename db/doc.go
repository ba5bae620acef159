// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection and schema creation.

# Opening a Connection

Open selects the driver from configuration:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Supported types are "sqlite" (modernc.org/sqlite, pure Go) and "postgres"
(lib/pq). For SQLite the foreign_keys pragma is enabled on open, since the
schema depends on cascading deletes.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - app_user: identity, bcrypt password hash, admin flag
  - questionnaire: catalog of questionnaires
  - question: catalog of questions (type, options, prompt)
  - question_junction: ordered many-to-many link carrying display priority
  - response: one submission per user per questionnaire
  - answer: submitted value list per question under a response

# Relationships

	questionnaire 1──* question_junction *──1 question
	app_user      1──* response
	questionnaire 1──* response
	response      1──* answer

All foreign keys use ON DELETE CASCADE; a response exclusively owns its
answers.

# Uniqueness Constraints

The store is the final backstop against races:

  - app_user.username (unique)
  - question_junction.(questionnaire_id, question_id)
  - response.(user_id, questionnaire_id)
  - answer.(response_id, question_id)
*/
package db
