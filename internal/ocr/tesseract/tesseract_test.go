package tesseract

import (
	"image"
	"testing"

	"github.com/otiai10/gosseract/v2"
)

func TestToLines(t *testing.T) {
	boxes := []gosseract.BoundingBox{
		{Box: image.Rect(10, 10, 400, 70), Word: "DẾ MÈN\n"},
		{Box: image.Rect(10, 80, 400, 85), Word: "   "},
		{Box: image.Rect(10, 100, 200, 124), Word: "Tô Hoài"},
	}

	lines := toLines(boxes)
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if lines[0].Text != "DẾ MÈN" || lines[0].Height != 60 {
		t.Errorf("Expected {DẾ MÈN 60}, got %+v", lines[0])
	}
	if lines[1].Text != "Tô Hoài" || lines[1].Height != 24 {
		t.Errorf("Expected {Tô Hoài 24}, got %+v", lines[1])
	}
}
