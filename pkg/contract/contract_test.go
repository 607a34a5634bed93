package contract

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/goliatone/go-nutriform/pkg/model"
)

func mustDefault(t *testing.T) *Contract {
	t.Helper()
	c, err := Default()
	if err != nil {
		t.Fatalf("default contract: %v", err)
	}
	return c
}

func validRequest() model.AnalysisRequest {
	return model.AnalysisRequest{
		FoodItems: []string{"apple", "rice"},
		UserPreferences: model.UserPreferences{
			Age:       model.Some(30),
			Gender:    "female",
			Allergies: []string{},
		},
	}
}

func TestDefault_LocatesAnalyzeOperation(t *testing.T) {
	c := mustDefault(t)
	if c.Method() != http.MethodPost {
		t.Fatalf("expected POST, got %s", c.Method())
	}
	if c.Path() != "/analyze" {
		t.Fatalf("expected /analyze, got %s", c.Path())
	}
	if c.Title() == "" {
		t.Fatalf("expected document title")
	}
}

func TestValidateRequest(t *testing.T) {
	c := mustDefault(t)

	if err := c.ValidateRequest(validRequest()); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	withOptionals := validRequest()
	withOptionals.UserPreferences.Goal = model.Some("maintain")
	withOptionals.UserPreferences.CalorieTarget = model.Some(2000)
	if err := c.ValidateRequest(withOptionals); err != nil {
		t.Fatalf("expected optionals accepted, got %v", err)
	}

	empty := validRequest()
	empty.FoodItems = []string{}
	err := c.ValidateRequest(empty)
	var violation *ViolationError
	if !errors.As(err, &violation) || violation.Direction != DirectionRequest {
		t.Fatalf("expected request violation, got %v", err)
	}
}

func TestValidateResponse(t *testing.T) {
	c := mustDefault(t)

	ok := []byte(`{"summary":"fine","comparison":[{"nutrient":"Protein","consumed":40,"required":50,"status":"low"}],"recommendations":["beans"]}`)
	if err := c.ValidateResponse(http.StatusOK, ok); err != nil {
		t.Fatalf("expected valid response, got %v", err)
	}

	missing := []byte(`{"summary":"fine","recommendations":[]}`)
	if err := c.ValidateResponse(http.StatusOK, missing); err == nil {
		t.Fatalf("expected missing comparison to fail")
	}

	wrongType := []byte(`{"summary":"x","comparison":[{"nutrient":"Iron","consumed":"lots","required":1,"status":"ok"}],"recommendations":[]}`)
	if err := c.ValidateResponse(http.StatusOK, wrongType); err == nil {
		t.Fatalf("expected non-numeric consumed to fail")
	}

	if err := c.ValidateResponse(http.StatusOK, []byte(`not json`)); err == nil {
		t.Fatalf("expected malformed body to fail")
	}

	if err := c.ValidateResponse(http.StatusBadRequest, []byte(`{"detail":"bad input"}`)); err != nil {
		t.Fatalf("expected error body accepted, got %v", err)
	}
}

func TestLoad_RejectsDocumentsWithoutOperation(t *testing.T) {
	doc := []byte(`{"openapi":"3.0.3","info":{"title":"x","version":"1"},"paths":{}}`)
	if _, err := Load(context.Background(), doc); !errors.Is(err, ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
	if _, err := Load(context.Background(), nil); err == nil {
		t.Fatalf("expected empty payload error")
	}
}

func TestSpec_ReturnsCopy(t *testing.T) {
	a := Spec()
	a[0] = '#'
	if Spec()[0] == '#' {
		t.Fatalf("expected Spec to return a copy")
	}
}
