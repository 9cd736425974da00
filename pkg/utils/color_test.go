package utils

import (
	"image/color"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    color.RGBA
		wantErr bool
	}{
		{"六位", "#3498db", color.RGBA{0x34, 0x98, 0xdb, 0xff}, false},
		{"八位带透明度", "#ff000080", color.RGBA{0xff, 0, 0, 0x80}, false},
		{"无井号", "00ff00", color.RGBA{0, 0xff, 0, 0xff}, false},
		{"长度错误", "#fff", color.RGBA{}, true},
		{"非法字符", "#gg0000", color.RGBA{}, true},
		{"空字符串", "", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMustParseHexColor(t *testing.T) {
	fallback := color.RGBA{1, 2, 3, 255}
	if got := MustParseHexColor("bad", fallback); got != fallback {
		t.Errorf("got %v, want fallback", got)
	}
	if got := MustParseHexColor("#010203", color.RGBA{}); got != fallback {
		t.Errorf("got %v, want %v", got, fallback)
	}
}
