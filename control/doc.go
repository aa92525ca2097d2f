// Package control
// Author: momentics <momentics@gmail.com>
//
// Diagnostic layer for the simulated loop: removal counters and debug probe
// registration. These are the privileged operations a production reactor does
// not expose; tests use them to assert on teardown behavior and to dump loop
// state mid-scenario.
package control
