package prompt

import (
	"fmt"
	"strings"

	"github.com/motivity-labs/support-triage/internal/domain"
)

// Rendered is a prompt ready for the completion backend: one system
// instruction plus one user message carrying the single input variable.
type Rendered struct {
	Kind   string
	System string
	User   string
}

// Catalog holds the fixed set of generation templates. The category
// classifier is built per deployment because the enumeration is configurable.
type Catalog struct {
	categorySystem string
}

// NewCatalog builds the catalog for the active category profile.
func NewCatalog(profile domain.CategoryProfile) *Catalog {
	return &Catalog{categorySystem: buildCategorySystem(profile)}
}

// Category renders the category-classification prompt.
func (c *Catalog) Category(ticket string) Rendered {
	return Rendered{Kind: "category", System: c.categorySystem, User: "Ticket: " + ticket}
}

// Urgency renders the urgency-classification prompt.
func (c *Catalog) Urgency(ticket string) Rendered {
	return Rendered{Kind: "urgency", System: urgencySystem, User: "Ticket: " + ticket}
}

// Response renders the first-response drafting prompt.
func (c *Catalog) Response(ticket string) Rendered {
	return Rendered{Kind: "response", System: responseSystem, User: "Ticket: " + ticket}
}

// Chat renders the conversational support prompt.
func (c *Catalog) Chat(question string) Rendered {
	return Rendered{Kind: "chat", System: chatSystem, User: "Question: " + question}
}

// ImageExtraction renders the instruction for the image-to-text backend.
// It is profile-independent, so it lives outside the catalog.
func ImageExtraction() Rendered {
	return Rendered{Kind: "image_extraction", System: imageExtractionSystem, User: "Extract the text from the attached image."}
}

func buildCategorySystem(profile domain.CategoryProfile) string {
	var b strings.Builder
	b.WriteString("Classify the user's support query into exactly one of these ticket categories:\n")
	for i, info := range profile.Categories {
		if info.Description != "" {
			fmt.Fprintf(&b, "%d. %s (e.g., %s)\n", i+1, info.Value, strings.ToLower(info.Description[:1])+info.Description[1:])
		} else {
			fmt.Fprintf(&b, "%d. %s\n", i+1, info.Value)
		}
	}
	fmt.Fprintf(&b, `
Rules:
- Return only the category name (e.g., "%s").
- Prioritize specificity over generic matches.
- Default to "%s" if unsure.
`, profile.Categories[0].Value, profile.Fallback())
	return b.String()
}

const urgencySystem = `Evaluate the urgency of this support ticket based on:
- Severity of the user's inability to use the product/service (blocked workflows, distress).
- Scale of impact (number of users affected).
- Indirect business risk (reputational harm, churn likelihood).

Use only one of these urgency levels:
1. Critical (total system outage, data breach, user cannot perform any core actions).
2. High (critical feature broken for a single user, security vulnerability, payment failure).
3. Medium (partial feature disruption with a workaround, minor data inaccuracies).
4. Low (cosmetic bugs, non-urgent feature requests).

Rules:
- Return only the urgency level (e.g., "High").
- Prioritize user frustration and blocked workflows.
- If multiple users are impacted, escalate urgency.
- Security and privacy issues default to Critical or High.
- Default to "Medium" if uncertain.`

const responseSystem = `Role: Act as a Level 1 Support Agent for Motivity Labs. Your task is to:
1. Resolve user issues falling under Level 1 scope.
2. Escalate to Level 2 if the issue is complex or outside Level 1 scope.

Level 1 Scope:
- Authentication & Access: password resets, login troubleshooting, account unlocks.
- Basic Troubleshooting: app crashes, slow performance, initial setup guidance.
- Product Guidance: feature explanations, dashboard navigation, analytics tool help.
- Installation: standard software setup, prerequisite verification.
- Cloud/Data: cloud service access, dashboard configuration.
- Compatibility: confirming system specs meet requirements.
- General FAQs: answers about Motivity Labs' services, basic escalations.

Instructions:
1. If the query is resolvable under Level 1:
   - Provide a step-by-step solution in simple, non-technical language.
   - Include troubleshooting tips (cache clearing, restarting apps).
   - Use numbered lists for clarity.
   - End with a friendly reassurance.
2. If the query is outside Level 1 scope, respond:
   "This requires further investigation. Your ticket has been assigned to a specialist, and they will contact you shortly."
   Do not speculate or provide incomplete fixes.

Rules:
- Prioritize brevity and empathy.
- Avoid jargon; use layman-friendly terms.
- Never invent solutions for unverifiable issues.`

const chatSystem = `Role: Act as a friendly, empathetic support chatbot for Motivity Labs. Your goal is to instantly resolve Level 1 issues or guide users to submit a ticket for complex problems.

Level 1 Support Scope (solve these directly):
- Password resets, login issues, or account unlocks.
- App crashes, slow performance, or basic setup guidance.
- Explaining product features, dashboard navigation, or FAQs.
- Software installation steps or compatibility checks.
- Basic cloud/data access issues.
- General questions about Motivity Labs' services.

How to Respond:
1. Empathize first; acknowledge frustration briefly.
2. Resolve Level 1 issues with simple, numbered steps in plain language,
   ending with reassurance.
3. Escalate complex queries: ask the user to submit a ticket and promise a
   follow-up. Never leave users without a next step.

Rules:
- Stay positive; avoid technical terms.
- Never guess. If unsure, escalate immediately.`

const imageExtractionSystem = `You will receive an image attached to a support ticket. Return only the text visible in the image, verbatim. Do not add commentary, labels, or formatting of your own. If the image contains no text, return an empty response.`
