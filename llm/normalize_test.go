package llm

import (
	"encoding/json"
	"testing"
)

func TestNormalize_PlainString(t *testing.T) {
	got := Normalize(RawResponse{Content: PlainText("hello")})
	if got.Reasoning != "" {
		t.Fatalf("Reasoning=%q, want empty", got.Reasoning)
	}
	if got.Answer != "hello" {
		t.Fatalf("Answer=%q", got.Answer)
	}
}

func TestNormalize_Segments(t *testing.T) {
	got := Normalize(RawResponse{Content: SegmentList{
		{Kind: SegmentThinking, Text: "step1"},
		{Kind: SegmentText, Text: "done"},
	}})
	if got.Reasoning != "step1" {
		t.Fatalf("Reasoning=%q", got.Reasoning)
	}
	if got.Answer != "done" {
		t.Fatalf("Answer=%q", got.Answer)
	}
}

func TestNormalize_SegmentsJoinOrder(t *testing.T) {
	got := Normalize(RawResponse{Content: SegmentList{
		{Kind: SegmentThinking, Text: "a"},
		{Kind: SegmentText, Text: "one"},
		{Kind: SegmentThinking, Text: "b"},
		{Kind: SegmentText, Text: "two"},
	}})
	if got.Reasoning != "a\nb" {
		t.Fatalf("Reasoning=%q", got.Reasoning)
	}
	if got.Answer != "one\ntwo" {
		t.Fatalf("Answer=%q", got.Answer)
	}
}

// The side-channel trace applies whenever no thinking segments were found,
// even if the segment list produced an answer.
func TestNormalize_SideChannelFallback(t *testing.T) {
	got := Normalize(RawResponse{
		Content:        SegmentList{{Kind: SegmentText, Text: "A"}},
		ReasoningTrace: "out of band",
	})
	if got.Reasoning != "out of band" {
		t.Fatalf("Reasoning=%q", got.Reasoning)
	}
	if got.Answer != "A" {
		t.Fatalf("Answer=%q", got.Answer)
	}
}

func TestNormalize_SegmentReasoningBeatsSideChannel(t *testing.T) {
	got := Normalize(RawResponse{
		Content: SegmentList{
			{Kind: SegmentThinking, Text: "inline"},
			{Kind: SegmentText, Text: "ok"},
		},
		ReasoningTrace: "ignored",
	})
	if got.Reasoning != "inline" {
		t.Fatalf("Reasoning=%q", got.Reasoning)
	}
}

func TestNormalize_PlainStringWithSideChannel(t *testing.T) {
	got := Normalize(RawResponse{
		Content:        PlainText("answer"),
		ReasoningTrace: "trace",
	})
	if got.Reasoning != "trace" {
		t.Fatalf("Reasoning=%q", got.Reasoning)
	}
	if got.Answer != "answer" {
		t.Fatalf("Answer=%q", got.Answer)
	}
}

func TestNormalize_UnrecognizedShape(t *testing.T) {
	got := Normalize(RawResponse{Raw: json.RawMessage("42")})
	if got.Reasoning != "" {
		t.Fatalf("Reasoning=%q, want empty", got.Reasoning)
	}
	if got.Answer != "42" {
		t.Fatalf("Answer=%q", got.Answer)
	}
}

func TestNormalize_EmptySegmentsFallsBackToRaw(t *testing.T) {
	got := Normalize(RawResponse{
		Content: SegmentList{},
		Raw:     json.RawMessage(`{"unexpected":true}`),
	})
	if got.Answer != `{"unexpected":true}` {
		t.Fatalf("Answer=%q", got.Answer)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	first := Normalize(RawResponse{Content: SegmentList{
		{Kind: SegmentThinking, Text: "plan"},
		{Kind: SegmentText, Text: "final"},
	}})
	second := Normalize(RawResponse{Content: PlainText(first.Answer)})
	if second.Answer != first.Answer {
		t.Fatalf("Answer=%q, want %q", second.Answer, first.Answer)
	}
	if second.Reasoning != "" {
		t.Fatalf("Reasoning=%q, want empty", second.Reasoning)
	}
}
