package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	model    string
	prompt   string
	config   *genai.GenerateContentConfig
	deadline bool
	resp     *genai.GenerateContentResponse
	err      error
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	_, f.deadline = ctx.Deadline()
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: genai.RoleModel}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func TestGeneratorGenerate(t *testing.T) {
	fake := &fakeModels{resp: textResponse(" {\"a\":1} ", "", "{\"b\":2}")}
	g := newGenerator(fake, "", 3*time.Second)

	out, err := g.Generate(context.Background(), "  give me json  ")
	require.NoError(t, err)

	assert.Equal(t, "{\"a\":1}\n{\"b\":2}", out)
	assert.Equal(t, defaultModel, fake.model)
	assert.Equal(t, "give me json", fake.prompt)
	assert.Equal(t, "application/json", fake.config.ResponseMIMEType)
	assert.True(t, fake.deadline)
}

func TestGeneratorErrors(t *testing.T) {
	var nilGen *Generator
	_, err := nilGen.Generate(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)

	g := newGenerator(&fakeModels{resp: textResponse()}, "gemini-pro", 0)
	_, err = g.Generate(context.Background(), "   ")
	assert.Error(t, err)

	_, err = g.Generate(context.Background(), "prompt")
	assert.EqualError(t, err, "gemini api returned empty response")

	g = newGenerator(&fakeModels{err: errors.New("quota")}, "gemini-pro", 0)
	_, err = g.Generate(context.Background(), "prompt")
	assert.ErrorContains(t, err, "quota")
	assert.Equal(t, "gemini-pro", g.Model())
}

func TestExtractJSON(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"x\":1}\n```":           `{"x":1}`,
		"```\n[1,2]\n```":                   `[1,2]`,
		"Sure! Here it is: {\"x\":1} Enjoy": `{"x":1}`,
		"prefix [\"a\",\"b\"] suffix":       `["a","b"]`,
		"no json here":                      "no json here",
	}
	for in, want := range cases {
		assert.Equal(t, want, ExtractJSON(in), in)
	}

	var out struct {
		X int `json:"x"`
	}
	require.NoError(t, DecodeJSON("```json {\"x\": 7} ```", &out))
	assert.Equal(t, 7, out.X)
	assert.Error(t, DecodeJSON("not json", &out))
	assert.Error(t, DecodeJSON("  ", &out))
}
