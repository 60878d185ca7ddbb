package assistant

import (
	"context"
	"strings"

	"sukaikan/internal/logger"

	"go.uber.org/zap"
)

const (
	MsgEmptyQuestion = "Silakan tulis pertanyaan tentang ikan 🐟"
	MsgNotConfigured = "Mohon maaf, Gemini API belum dikonfigurasi. Admin perlu memasukkan GEMINI_API_KEY di server."
	MsgFailure       = "Maaf, terjadi kesalahan saat menghubungi AI. Silakan coba lagi nanti."
)

const SystemInstruction = `Kamu adalah IKAN AI, asisten virtual dan pakar ikan untuk toko online SUKAIKAN.
Format jawabanmu menggunakan HTML dasar (contoh: <strong>, <br>, <em>) agar rapi di web.
SUKAIKAN menjual ikan laut berkualitas tinggi, diproses di Cold Storage, dijamin segar atau uang kembali.
Tugas utamamu:
1. Memberikan informasi gizi ikan (kalori, protein, omega-3, dll).
2. Memberikan resep masakan ikan yang praktis.
3. Mencocokkan pertanyaan dengan produk jika relevan.

Jawablah dengan ramah, informatif, dan ringkas. Gunakan emoji yang relevan.
Jika ada yang bertanya di luar topik ikan, makanan, atau SUKAIKAN, tolak dengan sopan dan kembalikan ke topik ikan.`

// Generator produces a completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, systemInstruction, prompt string) (string, error)
}

// Assistant answers customer questions about fish. It always returns text
// fit to show the customer; failures become fixed messages.
type Assistant struct {
	gen        Generator
	configured bool
}

// New returns an assistant backed by gen. A nil gen means no API key is
// configured.
func New(gen Generator) *Assistant {
	return &Assistant{gen: gen, configured: gen != nil}
}

func (a *Assistant) Answer(ctx context.Context, question string) string {
	question = strings.TrimSpace(question)
	if question == "" {
		return MsgEmptyQuestion
	}
	if !a.configured {
		return MsgNotConfigured
	}

	answer, err := a.gen.Generate(ctx, SystemInstruction, question)
	if err != nil {
		logger.FromCtx(ctx).Error("assistant request failed",
			zap.String("layer", "service"),
			zap.String("method", "Answer"),
			zap.Error(err),
		)
		return MsgFailure
	}

	return strings.ReplaceAll(answer, "\n", "<br>")
}
