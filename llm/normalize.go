package llm

import (
	"fmt"
	"strings"
)

// Normalize extracts a reasoning trace and final answer from a raw backend
// response. It is a pure function and never fails: absence of structure
// degrades to a textual rendering of the raw content.
//
// Precedence rules, in order:
//  1. Segmented content is partitioned into thinking and text spans,
//     preserving relative order within each partition and joining spans
//     with newlines.
//  2. The out-of-band ReasoningTrace is used only when no thinking segments
//     were found.
//  3. Plain-string content becomes the answer only when no text segments
//     were found; any other shape falls back to renderRaw.
func Normalize(raw RawResponse) NormalizedResponse {
	var out NormalizedResponse
	var haveAnswer bool

	if segs, ok := raw.Content.(SegmentList); ok {
		var thinking, text []string
		for _, s := range segs {
			switch s.Kind {
			case SegmentThinking:
				thinking = append(thinking, s.Text)
			case SegmentText:
				text = append(text, s.Text)
			}
		}
		if len(thinking) > 0 {
			out.Reasoning = strings.Join(thinking, "\n")
		}
		if len(text) > 0 {
			out.Answer = strings.Join(text, "\n")
			haveAnswer = true
		}
	}

	if out.Reasoning == "" {
		out.Reasoning = raw.ReasoningTrace
	}

	if !haveAnswer {
		if s, ok := raw.Content.(PlainText); ok {
			out.Answer = string(s)
		} else {
			out.Answer = renderRaw(raw)
		}
	}

	return out
}

// renderRaw produces a best-effort textual rendering of content the
// normalizer does not recognize.
func renderRaw(raw RawResponse) string {
	if len(raw.Raw) > 0 {
		return string(raw.Raw)
	}
	if raw.Content != nil {
		return fmt.Sprint(raw.Content)
	}
	return ""
}
