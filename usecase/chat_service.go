package usecase

import (
	"context"
	"fmt"

	"github.com/prismaticcrm/teacher-assistant/domain"
)

// ChatService runs one chat turn: resolve the profile URL, seed the
// session on first contact, forward the history to the LLM, and commit
// both the user message and the reply. A failed turn commits nothing.
type ChatService struct {
	llm            domain.Llm
	profiles       domain.ProfileFetcher
	sessions       domain.SessionStore
	profileBaseURL string
}

func NewChatService(llm domain.Llm, profiles domain.ProfileFetcher, sessions domain.SessionStore, profileBaseURL string) *ChatService {
	return &ChatService{
		llm:            llm,
		profiles:       profiles,
		sessions:       sessions,
		profileBaseURL: profileBaseURL,
	}
}

type ChatRequest struct {
	Message      string `json:"message"`
	ProfileURL   string `json:"profile_url,omitempty"`
	InstructorID int    `json:"instructor_id,omitempty"`
}

func (s *ChatService) Chat(ctx context.Context, req ChatRequest) (string, error) {
	if req.Message == "" {
		return "", fmt.Errorf("%w: message is required", domain.ErrInvalidRequest)
	}

	key, err := s.ResolveProfileURL(req)
	if err != nil {
		return "", err
	}

	var reply string
	err = s.sessions.Update(key, func(history []domain.ChatMessage) ([]domain.ChatMessage, error) {
		if len(history) == 0 {
			// First turn for this key: the profile is fetched once and
			// captured in the system message. Later turns reuse it and
			// never re-fetch, so profile updates do not alter an
			// ongoing conversation.
			doc, err := s.profiles.Fetch(ctx, key)
			if err != nil {
				return nil, err
			}
			history = append(history, domain.ChatMessage{
				Role:    domain.SystemRole,
				Content: SystemPrompt(doc),
			})
		}

		history = append(history, domain.ChatMessage{
			Role:    domain.UserRole,
			Content: req.Message,
		})

		assistant, err := s.llm.Complete(ctx, history)
		if err != nil {
			return nil, err
		}

		reply = assistant.Content
		return append(history, assistant), nil
	})
	if err != nil {
		return "", err
	}

	return reply, nil
}

// ResolveProfileURL produces the session key for a request. An explicit
// profile_url wins over instructor_id; with only an id the default
// profile-service pattern is used.
func (s *ChatService) ResolveProfileURL(req ChatRequest) (string, error) {
	if req.ProfileURL != "" {
		return req.ProfileURL, nil
	}
	if req.InstructorID > 0 {
		return fmt.Sprintf("%s/api/instructor-profile/%d", s.profileBaseURL, req.InstructorID), nil
	}
	return "", fmt.Errorf("%w: either profile_url or instructor_id is required", domain.ErrInvalidRequest)
}
