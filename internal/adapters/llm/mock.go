package llm

import (
	"context"
	"fmt"
)

// Fixed markers so mock output is never mistaken for a real briefing, in
// logs, tests or the UI.
const (
	MockSummaryMarker = "[mock summary]"
	MockReplyMarker   = "[mock reply]"
)

const mockEchoLimit = 160

// MockClient is a deterministic SummaryClient for offline operation. It
// never touches the network.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Summarize(ctx context.Context, callContext string) (string, error) {
	return fmt.Sprintf("%s %s", MockSummaryMarker, truncate(callContext, mockEchoLimit)), nil
}

func (m *MockClient) Reply(ctx context.Context, prompt string) (string, error) {
	return fmt.Sprintf("%s I heard: %s", MockReplyMarker, truncate(prompt, mockEchoLimit)), nil
}

// truncate shortens s to at most max runes. Cutting on runes rather than
// bytes keeps multibyte context valid UTF-8.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
