package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Thiết kế nội thất", "thiet-ke-noi-that"},
		{"Xây dựng nhà phố 2026", "xay-dung-nha-pho-2026"},
		{"Biệt thự Đà Nẵng", "biet-thu-da-nang"},
		{"Hello, World!", "hello-world"},
		{"  spaced   out  ", "spaced-out"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
