package ocr

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"retail-leasing/pkg/utils"

	genai "github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"
)

const extractionPrompt = `Read the insurance certificate at the following URL and extract its fields.
Respond with a single JSON object, no markdown, with exactly these keys:
  "readable": boolean, true only if the document is a legible insurance certificate
  "expiry_date": string "2006-01-02" or null
  "insured_amount": number in dollars or null
  "policy_number": string or null
  "insurance_company": string or null
Document URL: %s`

type geminiExtractor struct {
	model *genai.GenerativeModel
}

func NewGeminiExtractor(config utils.OCRConfig) (Extractor, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(config.Model)
	return &geminiExtractor{model: model}, nil
}

type extractionPayload struct {
	Readable         bool     `json:"readable"`
	ExpiryDate       *string  `json:"expiry_date"`
	InsuredAmount    *float64 `json:"insured_amount"`
	PolicyNumber     *string  `json:"policy_number"`
	InsuranceCompany *string  `json:"insurance_company"`
}

func (g *geminiExtractor) ExtractCertificate(ctx context.Context, documentURL string) (*Extraction, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(fmt.Sprintf(extractionPrompt, documentURL)))
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}

	text, ok := candidateText(resp)
	if !ok {
		// Safety-blocked responses come back with no candidates and a nil
		// error; treat them like an unreadable document.
		msg := "empty model response"
		return &Extraction{Success: false, Error: &msg}, nil
	}

	return parseExtraction(text)
}

func candidateText(resp *genai.GenerateContentResponse) (string, bool) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", false
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), true
}

// parseExtraction turns the model's JSON reply into an Extraction. A reply the
// model marks unreadable, or one that fails to parse, yields Success=false.
func parseExtraction(raw string) (*Extraction, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var payload extractionPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		msg := fmt.Sprintf("unparseable extraction reply: %v", err)
		return &Extraction{Success: false, Error: &msg}, nil
	}

	out := &Extraction{
		Success:          payload.Readable,
		PolicyNumber:     payload.PolicyNumber,
		InsuranceCompany: payload.InsuranceCompany,
	}

	if payload.ExpiryDate != nil {
		expiry, err := time.Parse("2006-01-02", *payload.ExpiryDate)
		if err != nil {
			msg := fmt.Sprintf("bad expiry date %q", *payload.ExpiryDate)
			return &Extraction{Success: false, Error: &msg}, nil
		}
		out.ExpiryDate = &expiry
	}

	if payload.InsuredAmount != nil {
		out.InsuredAmount = decimal.NewFromFloat(*payload.InsuredAmount)
	}

	return out, nil
}
