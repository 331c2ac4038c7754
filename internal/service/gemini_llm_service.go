package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/edugress/config"
	"github.com/lshigami/edugress/internal/model"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"
)

// GeminiLLMService grades open paragraph answers.
type GeminiLLMService interface {
	Available() bool
	ScoreAndFeedbackAnswer(ctx context.Context, question *model.Question, userAnswer string) (feedback string, score decimal.Decimal, err error)
}

type geminiLLMService struct {
	client *genai.GenerativeModel
}

func NewGeminiLLMService(cfg *config.Config) (GeminiLLMService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Open paragraph answers will wait for manual grading.")
		return &geminiLLMService{}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	m := client.GenerativeModel("gemini-1.5-flash")
	m.SetTemperature(0.2)
	return &geminiLLMService{client: m}, nil
}

func (s *geminiLLMService) Available() bool { return s.client != nil }

var supportedImageTypes = map[string]bool{
	"image/png": true, "image/jpeg": true, "image/webp": true,
	"image/gif": true, "image/heic": true, "image/heif": true,
}

func fetchImageData(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch image %s: %w", imageURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch image %s: status %d", imageURL, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read image %s: %w", imageURL, err)
	}

	mimeType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = mime.TypeByExtension(filepath.Ext(imageURL))
	}
	if !supportedImageTypes[mimeType] {
		return nil, "", fmt.Errorf("unsupported image type %q for %s", mimeType, imageURL)
	}
	return data, mimeType, nil
}

// parseScoreAndFeedback splits a reply of the form
//
//	Score: 3.5
//	Feedback:
//	...
//
// into its two parts. Feedback may be missing.
func parseScoreAndFeedback(raw string) (decimal.Decimal, string, error) {
	const scorePrefix, feedbackPrefix = "Score:", "Feedback:"
	i := strings.Index(raw, scorePrefix)
	if i < 0 {
		return decimal.Zero, strings.TrimSpace(raw), fmt.Errorf("reply has no %q line", scorePrefix)
	}
	rest := raw[i+len(scorePrefix):]
	line, after, _ := strings.Cut(rest, "\n")
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return decimal.Zero, strings.TrimSpace(after), fmt.Errorf("empty score")
	}
	score, err := decimal.NewFromString(strings.TrimSuffix(fields[0], ","))
	if err != nil {
		return decimal.Zero, strings.TrimSpace(after), fmt.Errorf("score %q: %w", fields[0], err)
	}

	feedback := after
	if j := strings.Index(after, feedbackPrefix); j >= 0 {
		feedback = after[j+len(feedbackPrefix):]
	}
	return score, strings.TrimSpace(feedback), nil
}

func buildParagraphPrompt(q *model.Question, answer string) string {
	var b strings.Builder
	b.WriteString("You are an experienced teacher grading a student's written answer.\n\n")
	b.WriteString("Task:\n---\n")
	b.WriteString(q.Text)
	if q.Paragraph != "" {
		b.WriteString("\n\n")
		b.WriteString(q.Paragraph)
	}
	b.WriteString("\n---\n\n")
	if q.Answer != "" {
		b.WriteString("Reference answer (for the grader only):\n---\n")
		b.WriteString(q.Answer)
		b.WriteString("\n---\n\n")
	}
	b.WriteString("Student's answer:\n---\n")
	b.WriteString(answer)
	b.WriteString("\n---\n\n")
	fmt.Fprintf(&b, `Grade the answer for correctness, completeness and clarity.
Reply strictly as:
Score: <number from 0 to %s>
Feedback:
<short feedback naming what is right, what is wrong and how to improve>
`, q.Score.String())
	return b.String()
}

func (s *geminiLLMService) ScoreAndFeedbackAnswer(ctx context.Context, q *model.Question, userAnswer string) (string, decimal.Decimal, error) {
	if s.client == nil {
		return "", decimal.Zero, fmt.Errorf("gemini client not initialized")
	}
	if strings.TrimSpace(userAnswer) == "" {
		return "No answer was given.", decimal.Zero, nil
	}

	var parts []genai.Part
	if q.Image != "" {
		data, mimeType, err := fetchImageData(ctx, q.Image)
		if err != nil {
			log.Warn().Err(err).Uint("questionID", q.ID).Msg("Grading without the question image")
		} else {
			parts = append(parts, genai.ImageData(strings.TrimPrefix(mimeType, "image/"), data))
		}
	}
	parts = append(parts, genai.Text(buildParagraphPrompt(q, userAnswer)))

	resp, err := s.client.GenerateContent(ctx, parts...)
	if err != nil {
		log.Error().Err(err).Uint("questionID", q.ID).Msg("Gemini API error during grading")
		return "", decimal.Zero, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", decimal.Zero, fmt.Errorf("gemini returned no content")
	}
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}

	score, feedback, err := parseScoreAndFeedback(text.String())
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", text.String()).Msg("Failed to parse Gemini grading reply")
		return feedback, decimal.Zero, err
	}
	if score.IsNegative() {
		score = decimal.Zero
	}
	if score.GreaterThan(q.Score) {
		score = q.Score
	}
	return feedback, score, nil
}
