// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

package validation

import (
	"strings"
	"testing"
)

type stateRequest struct {
	SortKey string `validate:"omitempty,oneof=posts likes retweets comments views"`
	Window  string `validate:"omitempty,oneof=all 7 30"`
	Page    int    `validate:"omitempty,min=1"`
	Hour    int    `validate:"min=-1,max=23"`
}

func TestValidateStructPasses(t *testing.T) {
	reqs := []stateRequest{
		{Hour: -1},
		{SortKey: "likes", Window: "7", Page: 3, Hour: 23},
		{SortKey: "views", Window: "all", Hour: 0},
	}
	for _, req := range reqs {
		if verr := ValidateStruct(&req); verr != nil {
			t.Errorf("valid request %+v rejected: %v", req, verr)
		}
	}
}

func TestValidateStructSingleError(t *testing.T) {
	req := stateRequest{SortKey: "replies", Hour: 0}
	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("expected validation error for bad sort key")
	}
	if len(verr.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d", len(verr.Errors()))
	}

	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %q", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "must be one of") {
		t.Errorf("message = %q, want oneof wording", apiErr.Message)
	}
	if apiErr.Details["field"] != "SortKey" {
		t.Errorf("details field = %v", apiErr.Details["field"])
	}
}

func TestValidateStructMultipleErrors(t *testing.T) {
	req := stateRequest{SortKey: "bogus", Page: -2, Hour: 24}
	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("expected validation errors")
	}
	if got := len(verr.Errors()); got != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", got, verr)
	}

	apiErr := verr.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("details fields has type %T", apiErr.Details["fields"])
	}
	if len(fields) != 3 {
		t.Errorf("expected 3 field entries, got %d", len(fields))
	}
	if !strings.Contains(apiErr.Message, "Hour: Hour must be at most 23") {
		t.Errorf("message = %q, want hour max wording", apiErr.Message)
	}
}

func TestTranslateMinMaxStrings(t *testing.T) {
	type searchReq struct {
		Query string `validate:"max=64"`
	}
	verr := ValidateStruct(&searchReq{Query: strings.Repeat("x", 65)})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if want := "Query must be at most 64 characters"; verr.Error() != want {
		t.Errorf("error = %q, want %q", verr.Error(), want)
	}
}
