package assistant

import (
	"context"
	"errors"
	"testing"

	"sukaikan/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	args := m.Called(ctx, systemInstruction, prompt)
	return args.String(0), args.Error(1)
}

func TestAssistant_Answer(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyQuestion", func(t *testing.T) {
		gen := new(MockGenerator)
		assert.Equal(t, MsgEmptyQuestion, New(gen).Answer(ctx, "   "))
		gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NotConfigured", func(t *testing.T) {
		assert.Equal(t, MsgNotConfigured, New(nil).Answer(ctx, "Berapa protein ikan kembung?"))
	})

	t.Run("NewlinesBecomeBreaks", func(t *testing.T) {
		gen := new(MockGenerator)
		gen.On("Generate", ctx, SystemInstruction, "Resep tongkol balado?").
			Return("<strong>Tongkol Balado</strong>\n1. Goreng tongkol\n2. Tumis sambal", nil)

		answer := New(gen).Answer(ctx, "  Resep tongkol balado?  ")
		assert.Equal(t, "<strong>Tongkol Balado</strong><br>1. Goreng tongkol<br>2. Tumis sambal", answer)
		gen.AssertExpectations(t)
	})

	t.Run("FailureIsLogged", func(t *testing.T) {
		core, observed := observer.New(zapcore.ErrorLevel)
		restore := logger.Replace(zap.New(core))
		defer restore()

		gen := new(MockGenerator)
		gen.On("Generate", ctx, mock.Anything, mock.Anything).Return("", errors.New("quota exceeded"))

		assert.Equal(t, MsgFailure, New(gen).Answer(ctx, "Omega-3 salmon?"))
		assert.Equal(t, 1, observed.FilterMessage("assistant request failed").Len())
	})
}

func TestNewGeminiClient_EmptyKey(t *testing.T) {
	assert.Nil(t, NewGeminiClient(context.Background(), ""))
	assert.Equal(t, MsgNotConfigured, New(NewGeminiClient(context.Background(), "")).Answer(context.Background(), "halo"))
}
