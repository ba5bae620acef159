// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateUserRequest: username, password
  - LoginRequest: username, password (the /token endpoint also accepts
    form-encoded credentials)
  - SubmitResponseRequest: questionnaire_id plus a list of
    AnswerSubmission (question_id, value)

# Response Types

Types for JSON responses:

  - TokenResponse: access_token, token_type
  - QuestionnaireDetail: questionnaire fields plus ordered questions
  - UserResponseCount: username, response_count
  - ResponseDetail: per-questionnaire report row for the admin detail view
  - ErrorResponse: error, message

# Domain Types

Internal data structures mirroring the relational schema:

  - User: identity, bcrypt hash (never serialized), admin flag
  - Questionnaire: id and display name
  - Question: type tag, option labels, prompt text
  - Response: one submission of one questionnaire by one user
  - Answer: submitted value list for one question under one response

Answer.Value is always an ordered list of strings: free-text answers are a
single-element list, multi-select answers carry one element per selection.

# Constants

Question types:

	QuestionTypeMCQ   = "mcq"
	QuestionTypeInput = "input"
*/
package models
