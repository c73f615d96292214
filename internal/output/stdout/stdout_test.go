package stdout

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/crimson-sun/practicematch/internal/model"
	"github.com/crimson-sun/practicematch/internal/output"
)

func testSelection() model.Selection {
	return model.Selection{
		ProfileID: "tom-bowers",
		Area:      "construction",
		Matched:   true,
		Score:     33,
		HeroImage: "/images/practice-areas/construction.webp",
	}
}

func TestOutputCompactJSON(t *testing.T) {
	var buf bytes.Buffer
	out := NewWriter(&buf, output.Standard, false)
	for i := 0; i < 2; i++ {
		if err := out.Write(context.Background(), testSelection()); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if m["area"] != "construction" || m["score"] != float64(33) {
		t.Fatalf("unexpected selection: %v", m)
	}
}

func TestOutputPrettyJSON(t *testing.T) {
	var buf bytes.Buffer
	out := NewWriter(&buf, output.Standard, true)
	out.Write(context.Background(), testSelection())

	if !strings.Contains(buf.String(), "\n  \"area\"") {
		t.Fatalf("expected indented output, got %q", buf.String())
	}
}

func TestOutputMinimalOmitsFields(t *testing.T) {
	var buf bytes.Buffer
	out := NewWriter(&buf, output.Minimal, false)
	out.Write(context.Background(), testSelection())

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := m["score"]; ok {
		t.Fatal("score should be omitted at minimal")
	}
	if m["area"] != "construction" {
		t.Fatalf("area should be preserved, got %v", m["area"])
	}
	if err := out.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
}
