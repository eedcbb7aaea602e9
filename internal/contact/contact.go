package contact

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("all fields required")

type Message struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}

type Repository interface {
	CreateMessage(ctx context.Context, m *Message) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Submit stores a message from the public contact form.
func (s *Service) Submit(ctx context.Context, name, email, message string) (*Message, error) {
	m := &Message{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Message: strings.TrimSpace(message),
	}

	if m.Name == "" || m.Email == "" || m.Message == "" {
		return nil, ErrInvalidInput
	}

	if err := s.repo.CreateMessage(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}
