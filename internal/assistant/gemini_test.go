package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockRoundTripper func(req *http.Request) (*http.Response, error)

func (f MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func respond(status int, body string) (*http.Response, error) {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func newTestClient(t *testing.T, rt MockRoundTripper) Generator {
	t.Helper()
	g := newGeminiClient(context.Background(), "gemini-key", &http.Client{Transport: rt})
	require.NotNil(t, g)
	return g
}

func TestNewGeminiClient_WithoutKey(t *testing.T) {
	assert.Nil(t, NewGeminiClient(context.Background(), ""))
	assert.Nil(t, New(NewGeminiClient(context.Background(), "")).gen)
}

func TestGeminiClient_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		g := newTestClient(t, func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, http.MethodPost, req.Method)
			assert.True(t, strings.HasSuffix(req.URL.Path, "/models/gemini-2.5-flash:generateContent"), req.URL.Path)
			assert.Equal(t, "gemini-key", req.Header.Get("x-goog-api-key"))

			var body struct {
				SystemInstruction struct {
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"systemInstruction"`
				Contents []struct {
					Role  string `json:"role"`
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"contents"`
			}
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			require.Len(t, body.SystemInstruction.Parts, 1)
			assert.Equal(t, "sys", body.SystemInstruction.Parts[0].Text)
			require.Len(t, body.Contents, 1)
			assert.Equal(t, "user", body.Contents[0].Role)
			assert.Equal(t, "Apa itu cumi tube?", body.Contents[0].Parts[0].Text)

			return respond(http.StatusOK, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Cumi tube "},{"text":"adalah..."}]}},{"content":{"parts":[{"text":"ignored"}]}}]}`)
		})

		answer, err := g.Generate(ctx, "sys", "Apa itu cumi tube?")
		require.NoError(t, err)
		assert.Equal(t, "Cumi tube adalah...", answer)
	})

	t.Run("APIError", func(t *testing.T) {
		g := newTestClient(t, func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusBadRequest, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`)
		})

		_, err := g.Generate(ctx, "sys", "q")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "INVALID_ARGUMENT")
	})

	t.Run("NoCandidates", func(t *testing.T) {
		g := newTestClient(t, func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, `{"candidates":[]}`)
		})

		_, err := g.Generate(ctx, "sys", "q")
		assert.ErrorIs(t, err, ErrEmptyAnswer)
	})

	t.Run("NetworkError", func(t *testing.T) {
		g := newTestClient(t, func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("dial tcp: timeout")
		})

		_, err := g.Generate(ctx, "sys", "q")
		assert.Error(t, err)
	})
}
