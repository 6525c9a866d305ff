// Package cli runs the ticketsys interpreter: it wires configuration,
// logging, the user directory and the session processor, then feeds input
// lines through a read–eval–print loop.
//
// Responses go to standard output, one line per command. Diagnostics go to
// standard error through the configured logger. When standard input is a
// terminal a prompt is shown; piped input gets none.
//
// The loop is started with App.Run(ctx), which returns after "exit", end of
// input, or context cancellation.
package cli
