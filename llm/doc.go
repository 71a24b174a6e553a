// Package llm provides a provider-agnostic core for resolving text-generation
// and embedding backends and normalizing their heterogeneous responses.
//
// Design goals:
//   - Stable domain model: backends return RawResponse values built from a
//     closed set of content shapes (PlainText, SegmentList) plus an optional
//     out-of-band reasoning trace.
//   - Fail loud on misconfiguration: resolution errors are typed (ConfigError,
//     UnavailableError) and carry remediation text; there are no retries and
//     no silent fallbacks between backends or model classes.
//   - Best-effort display: Normalize never fails; when a response has no
//     recognizable structure it degrades to a textual rendering.
//
// Backend implementations live under llm/providers and are responsible for
// mapping between the canonical model and each backend's wire format. The
// selection logic lives in llm/resolve.
package llm
