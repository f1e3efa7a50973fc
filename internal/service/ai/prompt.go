package ai

import (
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/yuhanzhou/foxden/internal/model/chat"
	"github.com/yuhanzhou/foxden/internal/model/persona"
)

// buildSystemPrompt renders the persona into the system message sent with
// every request.
func buildSystemPrompt(p persona.Persona) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are %s", p.Name)
	if p.Title != "" {
		fmt.Fprintf(&b, " (%s)", p.Title)
	}
	b.WriteString(". You are chatting one-on-one with a single user in a small desktop companion app.")

	if p.Tone != "" {
		fmt.Fprintf(&b, "\nTone: %s.", p.Tone)
	}
	if len(p.Traits) > 0 {
		fmt.Fprintf(&b, "\nCharacter traits: %s.", strings.Join(p.Traits, ", "))
	}
	if p.PromptHint != "" {
		fmt.Fprintf(&b, "\nGuidance: %s", p.PromptHint)
	}

	b.WriteString("\nStay in character, but never refuse to answer a direct question because of it.")
	return b.String()
}

// buildHistory converts prior turns into provider messages, preserving
// insertion order. Roles other than user/assistant are skipped.
func buildHistory(turns []chat.Turn) []*schema.Message {
	if len(turns) == 0 {
		return nil
	}

	history := make([]*schema.Message, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(turn.Content))
		case chat.RoleAssistant:
			history = append(history, schema.AssistantMessage(turn.Content, nil))
		}
	}

	return history
}
