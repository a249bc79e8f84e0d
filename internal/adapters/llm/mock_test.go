package llm_test

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Adityasingh-8858/warm-transfer/internal/adapters/llm"
)

func TestMockSummaryCarriesMarker(t *testing.T) {
	client := llm.NewMockClient()

	out, err := client.Summarize(context.Background(), "Customer X billing issue")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if !strings.HasPrefix(out, llm.MockSummaryMarker) {
		t.Fatalf("expected marker prefix %q, got %q", llm.MockSummaryMarker, out)
	}
	if !strings.Contains(out, "Customer X billing issue") {
		t.Fatalf("expected echo of input, got %q", out)
	}
}

func TestMockSummaryIsDeterministic(t *testing.T) {
	client := llm.NewMockClient()

	a, _ := client.Summarize(context.Background(), "same input")
	b, _ := client.Summarize(context.Background(), "same input")
	if a != b {
		t.Fatalf("mock output not deterministic: %q vs %q", a, b)
	}
}

func TestMockSummaryTruncatesLongContext(t *testing.T) {
	client := llm.NewMockClient()

	long := strings.Repeat("x", 5000)
	out, err := client.Summarize(context.Background(), long)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if len(out) > 250 {
		t.Fatalf("expected truncated echo, got %d bytes", len(out))
	}
}

func TestMockSummaryTruncationKeepsValidUTF8(t *testing.T) {
	client := llm.NewMockClient()

	long := strings.Repeat("ü", 300)
	out, err := client.Summarize(context.Background(), long)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if !utf8.ValidString(out) {
		t.Fatalf("truncated summary is not valid UTF-8: %q", out)
	}
	if !strings.HasSuffix(out, "ü...") {
		t.Fatalf("expected truncation on a rune boundary, got %q", out)
	}
}

func TestMockReplyCarriesMarker(t *testing.T) {
	client := llm.NewMockClient()

	out, err := client.Reply(context.Background(), "hello there")
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if !strings.HasPrefix(out, llm.MockReplyMarker) {
		t.Fatalf("expected marker prefix %q, got %q", llm.MockReplyMarker, out)
	}
}
