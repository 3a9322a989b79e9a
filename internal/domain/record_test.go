package domain

import (
	"strings"
	"testing"
)

func TestRecord_Content(t *testing.T) {
	r := Record{
		ID:     "p1",
		Name:   "Jane Doe",
		Skills: "React, Node.js",
		Bio:    "",
	}

	got := r.Content()
	want := "Name: Jane Doe\nSkills: React, Node.js"
	if got != want {
		t.Errorf("Content() = %q, want %q", got, want)
	}
}

func TestRecord_ContentOrdering(t *testing.T) {
	r := Record{
		ID:                "p2",
		Name:              "Bob",
		Bio:               "builder",
		Location:          "Berlin",
		YearsOfExperience: 7,
		House:             "North",
	}

	got := r.Content()
	lines := strings.Split(got, "\n")
	want := []string{
		"Name: Bob",
		"Bio: builder",
		"Location: Berlin",
		"Years of Experience: 7",
		"House: North",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), got)
	}
	for i, l := range lines {
		if l != want[i] {
			t.Errorf("line %d = %q, want %q", i, l, want[i])
		}
	}
}

func TestRecord_ContentEmpty(t *testing.T) {
	r := Record{ID: "p3"}
	if got := r.Content(); got != "" {
		t.Errorf("Content() = %q, want empty", got)
	}
}

func TestRecord_ContentBoolFields(t *testing.T) {
	r := Record{ID: "p4", Name: "A", IsStudent: true, OpenToWork: true}
	got := r.Content()
	if !strings.Contains(got, "Is Student: true") {
		t.Errorf("missing Is Student line: %q", got)
	}
	if !strings.Contains(got, "Open to Work: true") {
		t.Errorf("missing Open to Work line: %q", got)
	}

	r2 := Record{ID: "p5", Name: "B"}
	if strings.Contains(r2.Content(), "Is Student") {
		t.Errorf("false bool must be absent: %q", r2.Content())
	}
}

func TestRecord_ExperienceText(t *testing.T) {
	r := Record{YearsOfExperience: 5}
	if got := r.ExperienceText(); got != "5 years of experience" {
		t.Errorf("ExperienceText() = %q", got)
	}

	r2 := Record{}
	if got := r2.ExperienceText(); got != "" {
		t.Errorf("ExperienceText() = %q, want empty", got)
	}
}

func TestRecord_IndexDocument(t *testing.T) {
	r := Record{
		ID:          "p1",
		Name:        "Jane",
		Skills:      "Go",
		Designation: "Engineer",
	}
	content := r.Content()
	doc := r.IndexDocument(content)

	if doc.ID != "p1" {
		t.Errorf("doc.ID = %q", doc.ID)
	}
	if doc.FullTextContent != content {
		t.Errorf("doc.FullTextContent = %q, want %q", doc.FullTextContent, content)
	}
	if doc.Name != "Jane" || doc.Skills != "Go" || doc.Designation != "Engineer" {
		t.Errorf("structured fields not mirrored: %+v", doc)
	}
}

func TestNormalizeText(t *testing.T) {
	got := NormalizeText("a\nb\nc")
	if got != "a b c" {
		t.Errorf("NormalizeText = %q", got)
	}
}
