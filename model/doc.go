// Package model defines the provider-agnostic generation contract used by
// agents.
//
// Core goals:
//   - Keep the request shape minimal: system prompt, prior history, new message
//   - Treat generator errors as fatal for the turn (only guardrail failures
//     are masked by the agent pipeline, never transport failures)
//   - Facilitate deterministic local generation for demos and tests
//     (PatternGenerator, GeneratorFunc)
//
// Providers (e.g. OpenAI, Anthropic) implement the Generator interface in
// sub-packages so higher layers remain decoupled from vendor SDKs.
package model
