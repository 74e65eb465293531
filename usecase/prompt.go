package usecase

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// systemPromptTemplate is the fixed instructional preamble seeded into
// every new session, with the pretty-printed profile JSON in the middle.
// The wording is load-bearing for answer quality; do not edit casually.
const systemPromptTemplate = `
    You are an AI assistant helping a teacher and replying to queries relevant to their teaching.
    Guide them using professional, supportive, and actionable advice.

    Use the following instructor profile data (JSON) to answer questions:

    %s

    Rules:
    - Remember the conversation history to maintain context.
    - Only use information from this JSON or previous messages when answering.
    - Do not make up details that are not in the JSON or history.
    - If the JSON or history does not contain the answer, say "That information is not available in the profile."
    - Keep answers short, professional, and directly based on JSON values.
    `

// SystemPrompt builds the session's system message from a profile
// document, embedding it pretty-printed with two-space indentation.
func SystemPrompt(doc json.RawMessage) string {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, doc, "", "  "); err != nil {
		return fmt.Sprintf(systemPromptTemplate, string(doc))
	}
	return fmt.Sprintf(systemPromptTemplate, pretty.String())
}
