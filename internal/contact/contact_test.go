package contact_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/budgetease/internal/contact"
)

type fakeRepo struct {
	saved []*contact.Message
	err   error
}

func (f *fakeRepo) CreateMessage(_ context.Context, m *contact.Message) error {
	if f.err != nil {
		return f.err
	}

	m.ID = uuid.New()
	f.saved = append(f.saved, m)

	return nil
}

func TestService_Submit(t *testing.T) {
	repo := &fakeRepo{}
	svc := contact.NewService(repo)

	got, err := svc.Submit(context.Background(), " Ana ", "ana@example.com", "Hello")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.Len(t, repo.saved, 1)
}

func TestService_Submit_MissingFields(t *testing.T) {
	repo := &fakeRepo{}
	svc := contact.NewService(repo)

	_, err := svc.Submit(context.Background(), "Ana", "", "Hello")
	assert.ErrorIs(t, err, contact.ErrInvalidInput)
	assert.Empty(t, repo.saved)
}

func TestService_Submit_RepoError(t *testing.T) {
	svc := contact.NewService(&fakeRepo{err: errors.New("db down")})

	_, err := svc.Submit(context.Background(), "Ana", "ana@example.com", "Hello")
	assert.Error(t, err)
}
