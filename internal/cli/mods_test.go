package cli

import (
	"testing"
	"time"
)

func TestModFilterApply(t *testing.T) {
	tests := []struct {
		name   string
		filter modFilter
		want   []int
	}{
		{"all", modFilter{}, []int{1, 2, 3}},
		{"tag", modFilter{tag: "utility"}, []int{3}},
		{"side", modFilter{side: "server"}, []int{2}},
		{"search author", modFilter{search: "TYRON"}, []int{1, 3}},
		{"sort downloads", modFilter{sortBy: "downloads"}, []int{2, 3, 1}},
		{"sort name", modFilter{sortBy: "name"}, []int{2, 1, 3}},
		{"sort released", modFilter{sortBy: "released"}, []int{2, 1, 3}},
		{"limit", modFilter{sortBy: "downloads", limit: 1}, []int{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.apply(fakeMods)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d mods, want %d", len(got), len(tt.want))
			}
			for i, m := range got {
				if m.ModID != tt.want[i] {
					t.Errorf("position %d = mod %d, want %d", i, m.ModID, tt.want[i])
				}
			}
		})
	}
	if fakeMods[0].ModID != 1 {
		t.Error("apply must not reorder its input")
	}
}

func TestModFilterValidate(t *testing.T) {
	if err := (modFilter{sortBy: "size"}).validate(); err == nil {
		t.Error("unknown sort should fail")
	}
	if err := (modFilter{limit: -1}).validate(); err == nil {
		t.Error("negative limit should fail")
	}
	if err := (modFilter{sortBy: "trending", limit: 3}).validate(); err != nil {
		t.Errorf("valid filter: %v", err)
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		in, want string
	}{
		{"2024-03-10 11:30:00", "30m ago"},
		{"2024-03-10 07:00:00", "5h ago"},
		{"2024-03-07 12:00:00", "3d ago"},
		{"2023-12-25 00:00:00", "Dec 25, 2023"},
		{"2024-04-01 00:00:00", "Apr 1, 2024"},
		{"not a time", "not a time"},
	}
	for _, tt := range tests {
		if got := formatRelativeTime(tt.in, now); got != tt.want {
			t.Errorf("formatRelativeTime(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	tests := map[int]string{
		0:         "0",
		999:       "999",
		1_240:     "1.2k",
		3_400_000: "3.4M",
	}
	for n, want := range tests {
		if got := formatCount(n); got != want {
			t.Errorf("formatCount(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestStripTags(t *testing.T) {
	tests := map[string]string{
		"<p>Hello <b>world</b></p>":   "Hello world",
		"plain  text\n here":          "plain text here",
		"<br/>a<img src=\"x.png\"/>b": "ab",
		"":                            "",
	}
	for in, want := range tests {
		if got := stripTags(in); got != want {
			t.Errorf("stripTags(%q) = %q, want %q", in, got, want)
		}
	}
}
