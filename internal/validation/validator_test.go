// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package validation

import (
	"strings"
	"testing"
)

type prefsInput struct {
	TargetPalette string  `json:"targetPalette" validate:"omitempty,palette"`
	TargetVibe    string  `json:"targetVibe" validate:"omitempty,vibe"`
	BeamWidth     int     `json:"beamWidth" validate:"gte=0,lte=500"`
	BudgetMax     float64 `json:"budgetMax" validate:"gte=0"`
}

type pooledInput struct {
	Slot  string `json:"slot" validate:"omitempty,slot"`
	Title string `json:"title" validate:"required,max=10"`
}

type requestInput struct {
	ImageURL    string        `json:"imageUrl" validate:"required_without=Image,omitempty,http_url"`
	Image       string        `json:"image" validate:"omitempty,base64"`
	Items       []pooledInput `json:"items" validate:"min=1,max=3,dive"`
	Preferences prefsInput    `json:"preferences"`
	Internal    string        `json:"-" validate:"max=1"`
}

func validRequest() requestInput {
	return requestInput{
		ImageURL: "https://img.example/a.jpg",
		Items:    []pooledInput{{Slot: "top", Title: "Tee"}},
	}
}

func TestGetValidatorSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() returned different instances")
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*requestInput)
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{"valid", func(*requestInput) {}, "", "", ""},
		{"image bytes instead of url", func(r *requestInput) {
			r.ImageURL = ""
			r.Image = "aGVsbG8="
		}, "", "", ""},
		{"no image at all", func(r *requestInput) { r.ImageURL = "" }, "imageUrl", "required_without", "imageUrl is required when Image is not set"},
		{"non-http url", func(r *requestInput) { r.ImageURL = "ftp://x/y" }, "imageUrl", "http_url", "imageUrl must be an http or https URL"},
		{"bad slot", func(r *requestInput) { r.Items[0].Slot = "hat" }, "items[0].slot", "slot", "items[0].slot must be one of: top bottom jacket footwear accessory"},
		{"long title", func(r *requestInput) { r.Items[0].Title = "A Very Long Title" }, "items[0].title", "max", "items[0].title must be at most 10 characters"},
		{"no items", func(r *requestInput) { r.Items = nil }, "items", "min", "items must be at least 1 items"},
		{"bad palette", func(r *requestInput) { r.Preferences.TargetPalette = "neon" }, "preferences.targetPalette", "palette", ""},
		{"bad vibe", func(r *requestInput) { r.Preferences.TargetVibe = "punk" }, "preferences.targetVibe", "vibe", ""},
		{"beam too wide", func(r *requestInput) { r.Preferences.BeamWidth = 501 }, "preferences.beamWidth", "lte", "preferences.beamWidth must be less than or equal to 500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			verr := ValidateStruct(&req)
			if tt.wantTag == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil || len(verr.Errors()) != 1 {
				t.Fatalf("ValidateStruct() = %v, want one error", verr)
			}
			got := verr.Errors()[0]
			if got.Field() != tt.wantField || got.Tag() != tt.wantTag {
				t.Errorf("field/tag = %s/%s, want %s/%s", got.Field(), got.Tag(), tt.wantField, tt.wantTag)
			}
			if tt.wantMsg != "" && got.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", got.Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	req := validRequest()
	req.Preferences.TargetVibe = "punk"
	req.Preferences.BudgetMax = -5

	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want errors")
	}
	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q", apiErr.Code)
	}
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("Details = %v, want two fields", apiErr.Details)
	}
	if !strings.Contains(apiErr.Message, "preferences.budgetMax: ") {
		t.Errorf("Message = %q", apiErr.Message)
	}

	single := (&RequestValidationError{errors: []ValidationError{{field: "q", tag: "required", message: "q is required"}}}).ToAPIError()
	if single.Message != "q is required" || single.Details["field"] != "q" {
		t.Errorf("single = %+v", single)
	}
	if (&RequestValidationError{}).Error() != "validation failed" {
		t.Error("empty error message")
	}
}
