package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/bizbookhq/bizbook-backend/pkg/errors"
)

type samplePayload struct {
	Name   string  `json:"name" validate:"required"`
	Amount float64 `json:"amount" validate:"gt=0"`
}

func decodeSample(t *testing.T, body string) (samplePayload, error) {
	t.Helper()
	r := httptest.NewRequest("POST", "/", strings.NewReader(body))
	var payload samplePayload
	err := DecodeJSONBody(r, &payload)
	return payload, err
}

func TestDecodeJSONBodyAccepted(t *testing.T) {
	payload, err := decodeSample(t, `{"name":"cement","amount":42}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Name != "cement" || payload.Amount != 42 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	_, err := decodeSample(t, `{"name":"cement","amount":1,"bogus":true}`)
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyReportsFieldErrors(t *testing.T) {
	_, err := decodeSample(t, `{"amount":0}`)
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %v", typed.Details())
	}
	if details["name"] != "is required" {
		t.Fatalf("unexpected name message %q", details["name"])
	}
	if details["amount"] != "must be greater than 0" {
		t.Fatalf("unexpected amount message %q", details["amount"])
	}
}

func TestParseIDParamRejectsGarbage(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if _, err := ParseIDParam(r, "id"); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestParseQueryUint(t *testing.T) {
	r := httptest.NewRequest("GET", "/?partyId=7", nil)
	v, err := ParseQueryUint(r, "partyId")
	if err != nil || v == nil || *v != 7 {
		t.Fatalf("unexpected result %v %v", v, err)
	}

	r = httptest.NewRequest("GET", "/", nil)
	v, err = ParseQueryUint(r, "partyId")
	if err != nil || v != nil {
		t.Fatalf("expected nil for absent param, got %v %v", v, err)
	}

	r = httptest.NewRequest("GET", "/?partyId=abc", nil)
	if _, err = ParseQueryUint(r, "partyId"); err == nil {
		t.Fatal("expected error for non-numeric param")
	}
}
