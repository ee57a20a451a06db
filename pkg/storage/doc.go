// Package storage provides persistent storage for the scheduling assistant.
// It uses BadgerDB as the embedded database and stores JSON-encoded values:
// synthetic calendar events, seed markers and sent invites.
package storage
