package videos

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/shortflix/backend/internal/models"
)

func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestValidateInput(t *testing.T) {
	valid := VideoInput{VideoURL: "https://x.com/a.mp4", Title: "A", Tags: TagList{"x"}}

	cases := []struct {
		name      string
		mutate    func(in *VideoInput)
		wantField string
	}{
		{"valid", func(*VideoInput) {}, ""},
		{"validWithOptionals", func(in *VideoInput) { in.Description = strPtr("desc"); in.Duration = intPtr(0) }, ""},
		{"missingURL", func(in *VideoInput) { in.VideoURL = "" }, "videoUrl"},
		{"relativeURL", func(in *VideoInput) { in.VideoURL = "not-a-url" }, "videoUrl"},
		{"missingTitle", func(in *VideoInput) { in.Title = "" }, "title"},
		{"titleTooLong", func(in *VideoInput) { in.Title = strings.Repeat("t", 101) }, "title"},
		{"titleAtLimit", func(in *VideoInput) { in.Title = strings.Repeat("t", 100) }, ""},
		{"descriptionTooLong", func(in *VideoInput) { in.Description = strPtr(strings.Repeat("d", 501)) }, "description"},
		{"missingTags", func(in *VideoInput) { in.Tags = nil }, "tags"},
		{"emptyTags", func(in *VideoInput) { in.Tags = TagList{} }, "tags"},
		{"negativeDuration", func(in *VideoInput) { in.Duration = intPtr(-1) }, "duration"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)

			err := ValidateInput(in)
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError got %T", err)
			}
			if _, ok := verr.Fields[tc.wantField]; !ok {
				t.Fatalf("expected field %q in %v", tc.wantField, verr.Fields)
			}
		})
	}
}

func TestValidateVideoReportsInternalValidation(t *testing.T) {
	video := models.Video{
		VideoURL: "https://x.com/a.mp4",
		Title:    "A",
		Tags:     []string{"x"},
		Rating:   5.5,
		Comments: []models.Comment{{ID: "1", Author: "", Text: "hi"}},
	}

	err := ValidateVideo(video)
	if !errors.Is(err, ErrInternalValidation) {
		t.Fatalf("expected ErrInternalValidation got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError got %T", err)
	}
	if _, ok := verr.Fields["rating"]; !ok {
		t.Fatalf("expected rating field error in %v", verr.Fields)
	}
	if _, ok := verr.Fields["comments[0].author"]; !ok {
		t.Fatalf("expected nested comment field error in %v", verr.Fields)
	}
}

func TestTagListUnmarshal(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		want    []string
		wantErr bool
	}{
		{"array", `{"tags":["a","b"]}`, []string{"a", "b"}, false},
		{"single", `{"tags":"solo"}`, []string{"solo"}, false},
		{"null", `{"tags":null}`, nil, false},
		{"number", `{"tags":5}`, nil, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var in VideoInput
			err := json.Unmarshal([]byte(tc.body), &in)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if len(in.Tags) != len(tc.want) {
				t.Fatalf("unexpected tags: %v", in.Tags)
			}
			for i := range tc.want {
				if in.Tags[i] != tc.want[i] {
					t.Fatalf("unexpected tags: %v", in.Tags)
				}
			}
		})
	}
}
