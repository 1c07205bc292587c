// Package credential stores users and verifies their passwords.
//
// Passwords are hashed with bcrypt (per-hash salt, configurable cost) and
// never stored or logged in plain text. Email addresses are trimmed but
// compared case-sensitively. Email uniqueness is enforced by the Repository
// at insert time; MemoryRepository does it under a lock and the postgres
// repository in integration/credentialstore/postgres with a unique index.
package credential
