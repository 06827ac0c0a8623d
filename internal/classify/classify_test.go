// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package classify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/tomtom215/outfitter/internal/embedding"
	"github.com/tomtom215/outfitter/internal/models"
)

func TestParseModelText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want Result
	}{
		{
			name: "canonical json",
			text: `{"colorCategory":"neutrals","formality":"casual","category":"top"}`,
			want: Result{Slot: models.SlotTop, Palette: models.PaletteNeutrals, Vibe: models.VibeCasual},
		},
		{
			name: "alternate json keys",
			text: `{"palette":"Earthy tones","style":"Streetwear","category":"FOOTWEAR"}`,
			want: Result{Slot: models.SlotFootwear, Palette: models.PaletteEarth, Vibe: models.VibeCasual},
		},
		{
			name: "json array colors",
			text: `{"colors":["soft","pastel"],"vibe":"athletic"}`,
			want: Result{Palette: models.PalettePastels, Vibe: models.VibeAthletic},
		},
		{
			name: "fenced json",
			text: "```json\n{\"colorCategory\":\"brights\",\"formality\":\"formal\",\"category\":\"jacket\"}\n```",
			want: Result{Slot: models.SlotJacket, Palette: models.PaletteBrights, Vibe: models.VibeFormal},
		},
		{
			name: "unknown category ignored",
			text: `{"colorCategory":"neutrals","category":"outerwear"}`,
			want: Result{Palette: models.PaletteNeutrals},
		},
		{
			name: "csv",
			text: "neutrals, casual, top",
			want: Result{Slot: models.SlotTop, Palette: models.PaletteNeutrals, Vibe: models.VibeCasual},
		},
		{
			name: "bullets",
			text: "- **Bright** colors\n- Athletic\n- bottom",
			want: Result{Slot: models.SlotBottom, Palette: models.PaletteBrights, Vibe: models.VibeAthletic},
		},
		{
			name: "pipes with dress",
			text: "pastels | dressy | accessory",
			want: Result{Slot: models.SlotAccessory, Palette: models.PalettePastels, Vibe: models.VibeFormal},
		},
		{
			name: "nothing",
			text: "I cannot tell",
			want: Result{},
		},
		{
			name: "empty",
			text: "",
			want: Result{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ParseModelText(tt.text); got != tt.want {
				t.Errorf("ParseModelText(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	paletteTests := []struct {
		in   string
		want models.Palette
	}{
		{"Neutral", models.PaletteNeutrals},
		{"very BRIGHT", models.PaletteBrights},
		{"earthy", models.PaletteEarth},
		{"Pastel pink", models.PalettePastels},
		{"monochrome", ""},
	}
	for _, tt := range paletteTests {
		if got := NormalizePalette(tt.in); got != tt.want {
			t.Errorf("NormalizePalette(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	vibeTests := []struct {
		in   string
		want models.Vibe
	}{
		{"Semi-Formal", models.VibeFormal},
		{"dress shoes vibe", models.VibeFormal},
		{"athleisure", ""},
		{"Athletic", models.VibeAthletic},
		{"everyday wear", models.VibeCasual},
		{"street", models.VibeCasual},
		{"boho", ""},
	}
	for _, tt := range vibeTests {
		if got := NormalizeVibe(tt.in); got != tt.want {
			t.Errorf("NormalizeVibe(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

type fakeGenerator struct {
	text     string
	err      error
	blocked  bool
	gotModel string
	gotParts []*genai.Part
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.gotModel = model
	if len(contents) > 0 {
		f.gotParts = contents[0].Parts
	}
	if f.err != nil {
		return nil, f.err
	}
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: f.text}}},
		}},
	}
	if f.blocked {
		resp.PromptFeedback = &genai.GenerateContentResponsePromptFeedback{
			BlockReason: genai.BlockedReasonSafety,
		}
	}
	return resp, nil
}

func imageServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.jpg" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg; charset=binary")
		_, _ = w.Write([]byte{0xff, 0xd8, 0xff, 0xe0, 0, 0x10})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGeminiClassify(t *testing.T) {
	srv := imageServer(t)
	gen := &fakeGenerator{text: `{"colorCategory":"earth","formality":"casual","category":"jacket"}`}
	g := newGemini(GeminiConfig{Model: "test-model"}, gen, srv.Client(), zerolog.Nop())

	res, err := g.Classify(context.Background(), Request{ImageURL: srv.URL + "/a.jpg", Title: "Waxed Field Coat"})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	want := Result{Slot: models.SlotJacket, Palette: models.PaletteEarth, Vibe: models.VibeCasual}
	if res != want {
		t.Errorf("Classify() = %+v, want %+v", res, want)
	}
	if gen.gotModel != "test-model" {
		t.Errorf("model = %q, want test-model", gen.gotModel)
	}
	if len(gen.gotParts) != 2 || gen.gotParts[0].InlineData == nil {
		t.Fatalf("parts = %+v, want inline image then title", gen.gotParts)
	}
	if gen.gotParts[0].InlineData.MIMEType != "image/jpeg" {
		t.Errorf("MIMEType = %q, want image/jpeg", gen.gotParts[0].InlineData.MIMEType)
	}
	if !strings.Contains(gen.gotParts[1].Text, "Waxed Field Coat") {
		t.Errorf("title part = %q, want title hint", gen.gotParts[1].Text)
	}
}

func TestGeminiClassifyErrors(t *testing.T) {
	srv := imageServer(t)

	tests := []struct {
		name    string
		gen     *fakeGenerator
		req     Request
		wantErr error
	}{
		{"no image", &fakeGenerator{}, Request{Title: "x"}, ErrNoClassification},
		{"image 404", &fakeGenerator{}, Request{ImageURL: srv.URL + "/missing.jpg"}, ErrImageFetch},
		{"unparseable", &fakeGenerator{text: "no idea"}, Request{ImageURL: srv.URL + "/a.jpg"}, ErrNoClassification},
		{"model error", &fakeGenerator{err: errors.New("quota")}, Request{ImageURL: srv.URL + "/a.jpg"}, nil},
		{"blocked", &fakeGenerator{text: `{"category":"top"}`, blocked: true}, Request{ImageURL: srv.URL + "/a.jpg"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGemini(GeminiConfig{}, tt.gen, srv.Client(), zerolog.Nop())
			_, err := g.Classify(context.Background(), tt.req)
			if err == nil {
				t.Fatal("Classify() error = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Classify() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGeminiClassifyUploadedBytes(t *testing.T) {
	gen := &fakeGenerator{text: "brights, athletic, footwear"}
	g := newGemini(GeminiConfig{}, gen, nil, zerolog.Nop())

	res, err := g.Classify(context.Background(), Request{Image: []byte("\x89PNG\r\n\x1a\n0000")})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if res.Slot != models.SlotFootwear {
		t.Errorf("Slot = %q, want footwear", res.Slot)
	}
	if got := gen.gotParts[0].InlineData.MIMEType; got != "image/png" {
		t.Errorf("MIMEType = %q, want sniffed image/png", got)
	}
}

func TestNewGeminiRequiresKey(t *testing.T) {
	if _, err := NewGemini(context.Background(), GeminiConfig{}, nil, zerolog.Nop()); err == nil {
		t.Error("NewGemini() error = nil, want error for missing key")
	}
}

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"comma list", "jacket, leather jacket, black, biker", []string{"jacket", "leather jacket", "black", "biker"}},
		{"markdown bullets", "* footwear\n* white sneakers\r\n* low top", []string{"footwear", "white sneakers", "low top"}},
		{"repeats dropped", "top, Oversized Hoodie, oversized hoodie,, top", []string{"top", "Oversized Hoodie"}},
		{"empty", " \n , * ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseKeywords(tt.in)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("ParseKeywords(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGeminiKeywords(t *testing.T) {
	srv := imageServer(t)
	gen := &fakeGenerator{text: "jacket, denim jacket, light wash"}
	g := newGemini(GeminiConfig{}, gen, srv.Client(), zerolog.Nop())

	got, err := g.Keywords(context.Background(), embedding.URLSource(srv.URL+"/a.jpg"))
	if err != nil {
		t.Fatalf("Keywords() error = %v", err)
	}
	if strings.Join(got, "|") != "jacket|denim jacket|light wash" {
		t.Errorf("Keywords() = %q", got)
	}
	if len(gen.gotParts) != 1 || gen.gotParts[0].InlineData == nil {
		t.Errorf("parts = %+v, want only the inline image", gen.gotParts)
	}
}

func TestGeminiKeywordsErrors(t *testing.T) {
	srv := imageServer(t)

	tests := []struct {
		name    string
		gen     *fakeGenerator
		src     embedding.Source
		wantErr error
	}{
		{"empty source", &fakeGenerator{}, embedding.Source{}, embedding.ErrEmptySource},
		{"image 404", &fakeGenerator{}, embedding.URLSource(srv.URL + "/missing.jpg"), ErrImageFetch},
		{"blank answer", &fakeGenerator{text: " * \n"}, embedding.BytesSource([]byte("\x89PNG\r\n\x1a\n0000"), ""), ErrNoKeywords},
		{"model error", &fakeGenerator{err: errors.New("quota")}, embedding.URLSource(srv.URL + "/a.jpg"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGemini(GeminiConfig{}, tt.gen, srv.Client(), zerolog.Nop())
			_, err := g.Keywords(context.Background(), tt.src)
			if err == nil {
				t.Fatal("Keywords() error = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Keywords() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
