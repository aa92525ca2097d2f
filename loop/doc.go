// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package loop implements the deterministic time-travel event loop: a drop-in
// substitute for a production reactor that advances a virtual clock straight to
// the next pending deadline instead of waiting, and resolves I/O readiness from
// in-memory endpoint predicates instead of a kernel poll. Timers fire in
// deadline order, readiness callbacks fire only for currently registered
// interests, and cancellation is observed immediately before dispatch, so
// scripted test scenarios replay with identical callback order every run.
package loop
