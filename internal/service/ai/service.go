package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/yuhanzhou/foxden/internal/config"
	"github.com/yuhanzhou/foxden/internal/model/chat"
	"github.com/yuhanzhou/foxden/internal/model/persona"
)

// Service is the provider boundary: it turns a transcript plus a new user
// message into a single outbound model call and hands back the reply text.
// The compiled chain owns the chat model.
type Service struct {
	persona persona.Persona
	cfg     config.AIConfig
	chain   compose.Runnable[map[string]any, *schema.Message]
}

// NewService builds the chat model from configuration and compiles the
// conversation chain: system prompt, history placeholder, user query.
func NewService(ctx context.Context, p persona.Persona, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		persona: p,
		cfg:     cfg,
		chain:   runnable,
	}, nil
}

// StreamingEnabled indicates whether replies should be streamed.
func (s *Service) StreamingEnabled() bool {
	return s.cfg.StreamResponse
}

// Persona returns the companion the service speaks as.
func (s *Service) Persona() persona.Persona {
	return s.persona
}

// Respond performs one blocking provider call carrying the prior turns and
// the new user message, and returns the reply text.
func (s *Service) Respond(ctx context.Context, history []chat.Turn, userText string) (string, error) {
	response, err := s.chain.Invoke(ctx, s.chainInput(history, userText))
	if err != nil {
		return "", classifyProviderError(err)
	}

	reply := strings.TrimSpace(response.Content)
	if reply == "" {
		return "", fmt.Errorf("%w: provider returned an empty message", ErrMalformedResponse)
	}

	log.Printf("[ai] generated reply persona=%s length=%d", s.persona.ID, len(reply))
	return reply, nil
}

// RespondStream streams the reply, forwarding each chunk to onDelta, and
// returns the assembled text once the stream ends.
func (s *Service) RespondStream(ctx context.Context, history []chat.Turn, userText string, onDelta func(string)) (string, error) {
	stream, err := s.chain.Stream(ctx, s.chainInput(history, userText))
	if err != nil {
		return "", classifyProviderError(err)
	}
	defer stream.Close()

	var assembled strings.Builder
	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			return "", classifyProviderError(recvErr)
		}
		if chunk == nil || chunk.Content == "" {
			continue
		}
		assembled.WriteString(chunk.Content)
		if onDelta != nil {
			onDelta(chunk.Content)
		}
	}

	reply := strings.TrimSpace(assembled.String())
	if reply == "" {
		return "", fmt.Errorf("%w: provider stream carried no content", ErrMalformedResponse)
	}

	log.Printf("[ai] streamed reply persona=%s length=%d", s.persona.ID, len(reply))
	return reply, nil
}

func (s *Service) chainInput(history []chat.Turn, userText string) map[string]any {
	return map[string]any{
		"system":  buildSystemPrompt(s.persona),
		"history": buildHistory(history),
		"query":   userText,
	}
}
