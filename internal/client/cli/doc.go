// Package cli provides the interactive gophchat terminal client.
//
// It wires configuration, local storage, the session store, the HTTP API
// adapter, the routing guard and the chat controller, and runs a REPL whose
// screens mirror the routes /login, /register and /chat.
//
// Key features:
//   - Login / Register, with the session restored on the next start
//   - List / New / Open conversations
//   - Send messages and read Markdown replies with highlighted code
//   - Logout
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL and Input for details.
package cli
