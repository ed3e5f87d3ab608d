package domain

import "testing"

func TestIsUnset(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{"$ null", true},
		{"/media/a.mp4", false},
		{"0", false},
		// Сентинел не нормализуется: только точный литерал
		{"$null", false},
		{" $ null ", false},
	}

	for _, tt := range tests {
		if got := IsUnset(tt.in); got != tt.want {
			t.Errorf("IsUnset(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNodeData_StringSet(t *testing.T) {
	d := NodeData{
		"filePath": "/media/a.mp4",
		"empty":    "",
		"sentinel": "$ null",
		"blank":    "   ",
		"numeric":  42.0,
	}

	if v, ok := d.StringSet("filePath"); !ok || v != "/media/a.mp4" {
		t.Errorf("StringSet(filePath) = %q, %v", v, ok)
	}
	for _, key := range []string{"empty", "sentinel", "blank", "missing", "numeric"} {
		if _, ok := d.StringSet(key); ok {
			t.Errorf("StringSet(%s) should report unset", key)
		}
	}

	// nil-карта безопасна
	var nilData NodeData
	if _, ok := nilData.StringSet("anything"); ok {
		t.Error("nil NodeData should report unset")
	}
}

func TestNodeData_Float(t *testing.T) {
	d := NodeData{
		"f":   2.5,
		"i":   int(3),
		"s":   "4.5",
		"bad": "not a number",
	}

	if got := d.Float("f", 0); got != 2.5 {
		t.Errorf("Float(f) = %v", got)
	}
	if got := d.Float("i", 0); got != 3 {
		t.Errorf("Float(i) = %v", got)
	}
	if got := d.Float("s", 0); got != 4.5 {
		t.Errorf("Float(s) = %v", got)
	}
	if got := d.Float("bad", 7); got != 7 {
		t.Errorf("Float(bad) = %v, want default", got)
	}
	if got := d.Float("missing", 1); got != 1 {
		t.Errorf("Float(missing) = %v, want default", got)
	}
}

func TestNodeData_Clone(t *testing.T) {
	orig := NodeData{"filePath": "/media/a.mp4"}
	clone := orig.Clone()
	clone["filePath"] = "/media/b.mp4"

	if orig.String("filePath") != "/media/a.mp4" {
		t.Error("mutating clone should not affect original")
	}

	// Clone nil даёт пустую, но рабочую карту
	var nilData NodeData
	c := nilData.Clone()
	c["x"] = "y"
	if c.String("x") != "y" {
		t.Error("clone of nil NodeData should be writable")
	}
}

func TestNodeData_ValueEqual(t *testing.T) {
	d := NodeData{
		"path": "/media/a.mp4",
		"trim": map[string]any{"start": 1.0, "end": 2.0},
	}

	if !d.ValueEqual("path", "/media/a.mp4") {
		t.Error("equal string should compare equal")
	}
	if d.ValueEqual("path", "/media/b.mp4") {
		t.Error("different string should not compare equal")
	}
	if !d.ValueEqual("trim", map[string]any{"start": 1.0, "end": 2.0}) {
		t.Error("deep-equal map should compare equal")
	}
	if d.ValueEqual("missing", "") {
		t.Error("missing key should not compare equal to anything")
	}
}
