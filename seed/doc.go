// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package seed imports the questionnaire catalog from CSV exports.

The seed directory holds three files:

	questionnaire_questionnaires.csv - id,name
	questionnaire_questions.csv      - id,question (the question column
	                                   is a JSON document with type,
	                                   options, question)
	questionnaire_junction.csv       - id,questionnaire_id,question_id,priority

LoadDir wipes the catalog (and all responses, which reference it) and
imports the three files in a single transaction, so a failed load leaves
the previous catalog intact.

EnsureAdmin bootstraps an admin account on first start without touching
an existing one.
*/
package seed
