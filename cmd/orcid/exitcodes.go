package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing iD, invalid config)
	ExitMalformed   = 3 // Profile document lacks a required field
	ExitNotFound    = 4 // Record not found
	ExitAuthError   = 5 // Missing, invalid or insufficient access token
	ExitSaveFailed  = 6 // Save reached ORCID but did not succeed
	ExitRateLimited = 7 // ORCID returned 429; retry later
)
