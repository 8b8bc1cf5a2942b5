package ocr

import (
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
)

func TestCandidateText_EmptyResponse(t *testing.T) {
	// Safety-blocked replies carry no candidates; nil-content candidates also
	// occur. Neither may panic, both report no text.
	for _, resp := range []*genai.GenerateContentResponse{
		{},
		{Candidates: []*genai.Candidate{{Content: nil}}},
	} {
		text, ok := candidateText(resp)
		if ok {
			t.Fatalf("expected no usable text, got %q", text)
		}
	}
}

func TestCandidateText_ConcatenatesParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []genai.Part{genai.Text(`{"readable": `), genai.Text(`false}`)},
			},
		}},
	}

	text, ok := candidateText(resp)
	if !ok {
		t.Fatalf("expected usable text")
	}
	if text != `{"readable": false}` {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestParseExtraction(t *testing.T) {
	raw := `{"readable": true, "expiry_date": "2027-06-30", "insured_amount": 20000000, "policy_number": "PL-99812", "insurance_company": "Allied Mutual"}`

	out, err := parseExtraction(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Success {
		t.Fatalf("expected successful extraction")
	}
	want := time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)
	if out.ExpiryDate == nil || !out.ExpiryDate.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, out.ExpiryDate)
	}
	if out.InsuredAmount.IntPart() != 20000000 {
		t.Fatalf("expected insured amount 20000000, got %s", out.InsuredAmount)
	}
	if out.PolicyNumber == nil || *out.PolicyNumber != "PL-99812" {
		t.Fatalf("unexpected policy number: %v", out.PolicyNumber)
	}
}

func TestParseExtraction_StripsMarkdownFences(t *testing.T) {
	raw := "```json\n{\"readable\": true, \"expiry_date\": \"2027-01-01\", \"insured_amount\": 25000000, \"policy_number\": null, \"insurance_company\": null}\n```"

	out, err := parseExtraction(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Success {
		t.Fatalf("expected successful extraction, got error %v", out.Error)
	}
}

func TestParseExtraction_Unreadable(t *testing.T) {
	out, err := parseExtraction(`{"readable": false, "expiry_date": null, "insured_amount": null, "policy_number": null, "insurance_company": null}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Success {
		t.Fatalf("expected unreadable document")
	}
}

func TestParseExtraction_GarbageReply(t *testing.T) {
	out, err := parseExtraction("I could not find a certificate at that URL.")
	if err != nil {
		t.Fatalf("garbage replies should degrade, not error: %v", err)
	}
	if out.Success {
		t.Fatalf("expected failed extraction")
	}
	if out.Error == nil {
		t.Fatalf("expected error detail on the extraction")
	}
}

func TestParseExtraction_BadExpiryDate(t *testing.T) {
	out, err := parseExtraction(`{"readable": true, "expiry_date": "30/06/2027", "insured_amount": 20000000, "policy_number": null, "insurance_company": null}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Success {
		t.Fatalf("expected demotion to failure on malformed date")
	}
}
