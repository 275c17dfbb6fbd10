package ai_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/servihogar-api/internal/application/ai"
	"github.com/jhoicas/servihogar-api/internal/domain"
	"github.com/jhoicas/servihogar-api/internal/domain/entity"
	"github.com/jhoicas/servihogar-api/internal/infrastructure/memory"
)

type mockLLM struct {
	mock.Mock
}

func (m *mockLLM) Reply(ctx context.Context, system, prompt string) (string, error) {
	args := m.Called(ctx, system, prompt)
	return args.String(0), args.Error(1)
}

var actor = entity.Actor{UserID: "u-9", Name: "Pedro", Role: entity.RoleTechnician}

func TestAsk_RegistraInteraccion(t *testing.T) {
	store := memory.NewStore()
	llm := new(mockLLM)
	llm.On("Reply", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), mock.Anything, "¿Qué presión usa un boiler?").Return("Entre 1 y 3 bar.", nil)

	uc := ai.NewUseCase(llm, store.AIInteractionRepository(), zerolog.Nop())
	reply, err := uc.Ask(context.Background(), actor, "  ¿Qué presión usa un boiler?  ")
	require.NoError(t, err)
	assert.Equal(t, "Entre 1 y 3 bar.", reply)

	logs := store.AIInteractions()
	require.Len(t, logs, 1)
	assert.Equal(t, "Pedro", logs[0].Actor)
	assert.Equal(t, "Entre 1 y 3 bar.", logs[0].Reply)
	llm.AssertExpectations(t)
}

func TestAsk_FallaDelProveedor(t *testing.T) {
	store := memory.NewStore()
	llm := new(mockLLM)
	llm.On("Reply", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.Join(domain.ErrUpstream, errors.New("503")))

	uc := ai.NewUseCase(llm, store.AIInteractionRepository(), zerolog.Nop())
	_, err := uc.Ask(context.Background(), actor, "hola")
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Empty(t, store.AIInteractions())
}

func TestAsk_PromptVacio(t *testing.T) {
	uc := ai.NewUseCase(new(mockLLM), memory.NewStore().AIInteractionRepository(), zerolog.Nop())
	_, err := uc.Ask(context.Background(), actor, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
