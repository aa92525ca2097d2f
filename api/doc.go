// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package api defines the contracts shared by the timeloop packages: the event
// loop surface consumed by code under test, the mock endpoint contract, readiness
// interest masks, cancellable callback handles, and common error types.
package api
