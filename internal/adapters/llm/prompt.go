package llm

import "fmt"

const summarySystemPrompt = `You are a helpful assistant that creates concise summaries of customer service calls.
Your summary should include the customer's main issue, any progress made, and what still needs to be resolved.
Keep it under 200 words.`

const replySystemPrompt = `You are an AI assistant participating in a live support call.
Reply in one or two short sentences suitable for being read aloud.
Be direct and helpful; do not use markdown or lists.`

// buildSummaryPrompt wraps the raw call context for the summary request.
func buildSummaryPrompt(callContext string) string {
	return fmt.Sprintf("Please summarize this call context for a warm transfer: %s", callContext)
}
