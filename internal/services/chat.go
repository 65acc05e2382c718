package services

import (
	"context"
	"strings"
	"time"

	"gemini-chat-backend/internal/models"
)

// Provider starts remote conversations with a generative model.
type Provider interface {
	StartSession(ctx context.Context) (Session, error)
}

// Session is a provider-side conversation that accumulates turns.
type Session interface {
	Send(ctx context.Context, text string) (string, error)
}

type ChatService struct {
	provider       Provider
	callTimeout    time.Duration
	requestTimeout time.Duration
}

// NewChatService returns a service that bounds every outbound call by
// callTimeout and the whole replay-and-send chain by requestTimeout.
// Non-positive timeouts leave that bound to the request context.
func NewChatService(provider Provider, callTimeout, requestTimeout time.Duration) *ChatService {
	return &ChatService{
		provider:       provider,
		callTimeout:    callTimeout,
		requestTimeout: requestTimeout,
	}
}

// Handle replays the user turns of req.ChatHistory into a fresh session,
// then sends req.Message and returns the model's reply. Assistant turns are
// not replayed.
func (s *ChatService) Handle(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return models.ChatResponse{}, &ValidationError{Fields: map[string]string{"message": "Message is required"}}
	}

	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	var session Session
	err := s.call(ctx, func(ctx context.Context) error {
		var err error
		session, err = s.provider.StartSession(ctx)
		return err
	})
	if err != nil {
		return models.ChatResponse{}, &UpstreamError{Err: err}
	}

	for _, turn := range req.ChatHistory {
		if turn.Role != "user" {
			continue
		}
		err := s.call(ctx, func(ctx context.Context) error {
			_, err := session.Send(ctx, turn.Content)
			return err
		})
		if err != nil {
			return models.ChatResponse{}, &UpstreamError{Err: err}
		}
	}

	var reply string
	err = s.call(ctx, func(ctx context.Context) error {
		var err error
		reply, err = session.Send(ctx, req.Message)
		return err
	})
	if err != nil {
		return models.ChatResponse{}, &UpstreamError{Err: err}
	}
	if reply == "" {
		return models.ChatResponse{}, &UpstreamError{Err: ErrEmptyReply}
	}

	return models.ChatResponse{Response: reply}, nil
}

func (s *ChatService) call(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.callTimeout <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return fn(ctx)
}
