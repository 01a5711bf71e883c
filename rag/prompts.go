package rag

import (
	"strings"

	"github.com/alliancehq/alliance-rag/llm"
)

const notFoundAnswer = "Information not found in documents"

const simpleAnswerPrompt = `You answer single-fact questions from retrieved document passages.

Rules:
1. Return ONLY the literal fact, typically 1-10 words. Multi-part answers may be longer.
2. If the passages do not support an answer, reply exactly: "` + notFoundAnswer + `".
3. Treat these term families as equivalent when matching facts: rent roll / rent
   schedule / tenancy schedule; T12 / trailing twelve months / TTM; NOI / net
   operating income; P&L / profit and loss / income statement; cap rate /
   capitalization rate.
4. Never invent figures that are not in the passages.`

const complexAnswerPrompt = `You are a professional assistant for Alliance, answering questions over the
user's property documents. Your tone is clear, confident and knowledgeable.

You are given evidence gathered for several sub-questions of the user's query.

Rules:
1. Integrate ALL the evidence into one coherent report that answers the user's
   ORIGINAL question, not the sub-questions individually.
2. For any sub-question whose evidence is missing or insufficient, say so
   explicitly rather than guessing.
3. Cite the source document inline for every factual claim, e.g. (Lease.pdf).
4. Present naturally tabular data as a markdown table.
5. If no evidence supports an answer at all, state that the information was not
   found in the documents. Never fabricate figures.`

// buildSimpleEvidence formats pooled matches grouped by source document, the
// shape the simple-answer prompt expects.
func buildSimpleEvidence(bundle *EvidenceBundle) string {
	var b strings.Builder
	for _, item := range bundle.Items {
		bySource := make(map[string][]string)
		var order []string
		for _, m := range item.Matches {
			if _, ok := bySource[m.Metadata.Source]; !ok {
				order = append(order, m.Metadata.Source)
			}
			bySource[m.Metadata.Source] = append(bySource[m.Metadata.Source], m.Metadata.Text)
		}
		for _, source := range order {
			b.WriteString("--- Context from document: " + source + " ---\n")
			for _, text := range bySource[source] {
				b.WriteString("- " + text + "\n")
			}
			b.WriteString("\n")
		}
	}
	if b.Len() == 0 {
		return "(no passages were retrieved)"
	}
	return b.String()
}

// buildComplexEvidence concatenates every sub-question's evidence in bundle
// order, each passage tagged with its sub-question and source document. Order
// matters: the synthesis prompt breaks evidence conflicts in favour of
// earlier sub-questions.
func buildComplexEvidence(bundle *EvidenceBundle) string {
	var b strings.Builder
	for _, item := range bundle.Items {
		b.WriteString("### Sub-question: " + item.Question + "\n")
		if len(item.Matches) == 0 {
			b.WriteString("(no evidence found)\n\n")
			continue
		}
		for _, m := range item.Matches {
			b.WriteString("[source: " + m.Metadata.Source + "] " + m.Metadata.Text + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// historyMessages converts prior conversation turns into model messages.
func historyMessages(history []Turn) []llm.Message {
	messages := make([]llm.Message, 0, len(history))
	for _, turn := range history {
		role := llm.RoleUser
		if turn.Sender == "ai" {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Text})
	}
	return messages
}
