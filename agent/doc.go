// Package agent implements the conversational agent core: conversation state
// (append-only history, counters, free-form context), the message processing
// pipeline with validation guardrails, and correlation-tagged logging of every
// exchange.
//
// The package separates two concerns:
//   - Conversation: a composed state helper owning one ConversationState and
//     its lifecycle (lazy initialization, append, reset). Agent variants share
//     it by composition instead of inheriting plumbing from a base type.
//   - Chat: the concrete agent mediating every message through a fixed
//     pipeline (append -> generate -> validate -> append-and-return).
//
// Guardrail rejections never surface as errors; they degrade the turn to a
// fixed fallback response. The only failures a caller sees are ErrEmptyInput,
// an invalid configuration at construction, and generator errors.
package agent
