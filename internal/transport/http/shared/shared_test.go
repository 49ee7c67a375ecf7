package shared

import (
	"net/http/httptest"
	"testing"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
		wantDay int
	}{
		{name: "plain date", value: "2024-03-15", wantDay: 15},
		{name: "rfc3339", value: "2024-03-15T10:30:00Z", wantDay: 15},
		{name: "empty is zero", value: ""},
		{name: "garbage", value: "15/03/2024", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := ParseDate(tc.value)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected parse error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.value == "" {
				if !parsed.IsZero() {
					t.Fatalf("expected zero time, got %v", parsed)
				}
				return
			}
			if parsed.Day() != tc.wantDay {
				t.Fatalf("day = %d, want %d", parsed.Day(), tc.wantDay)
			}
		})
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", query: "", wantLimit: 50, wantOffset: 0},
		{name: "explicit", query: "?limit=10&offset=30", wantLimit: 10, wantOffset: 30},
		{name: "capped at max", query: "?limit=9999", wantLimit: 200, wantOffset: 0},
		{name: "negative ignored", query: "?limit=-5&offset=-1", wantLimit: 50, wantOffset: 0},
		{name: "garbage ignored", query: "?limit=abc&offset=xyz", wantLimit: 50, wantOffset: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/entries"+tc.query, nil)
			page := ParsePagination(r, 50, 200)
			if page.Limit != tc.wantLimit {
				t.Fatalf("limit = %d, want %d", page.Limit, tc.wantLimit)
			}
			if page.Offset != tc.wantOffset {
				t.Fatalf("offset = %d, want %d", page.Offset, tc.wantOffset)
			}
		})
	}
}

func TestValidatorCollectsIssues(t *testing.T) {
	v := NewValidator()
	v.Required("name", "  ", "name is required")
	v.Enum("status", "bogus", []string{"pending", "approved"}, "unknown status")
	v.Enum("role", "manager", []string{"employee", "manager"}, "unknown role")
	if _, ok := v.Date("entryDate", "not-a-date"); ok {
		t.Fatal("expected date issue")
	}

	issues := v.Issues()
	if len(issues) != 3 {
		t.Fatalf("issues = %d, want 3", len(issues))
	}
	// sorted by field
	if issues[0].Field != "entryDate" || issues[1].Field != "name" || issues[2].Field != "status" {
		t.Fatalf("unexpected issue order: %+v", issues)
	}
}

func TestValidatorRejectWritesBadRequest(t *testing.T) {
	v := NewValidator()
	v.Add("field", "broken")

	rec := httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("expected rejection")
	}
	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	clean := NewValidator()
	rec = httptest.NewRecorder()
	if clean.Reject(rec, "req-2") {
		t.Fatal("clean validator must not reject")
	}
}
