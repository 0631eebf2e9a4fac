// Package session provides a volatile in-memory registry mapping conversation
// ids to their agents. It exists so a serving surface can host many
// independent conversations concurrently; it is not a persistence layer, and
// every entry dies with the process.
package session
