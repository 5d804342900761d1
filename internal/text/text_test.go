package text

import "testing"

func TestCorrectSpaces(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"seðlabankastjóri", "seðlabankastjóri"},
		{"forstjóri  Samherja", "forstjóri Samherja"},
		{"forstjóri Samherja .", "forstjóri Samherja."},
		{"formaður , sem var", "formaður, sem var"},
		{"\tfyrrverandi\nforseti  Íslands ", "fyrrverandi forseti Íslands"},
	}
	for _, tt := range tests {
		if got := CorrectSpaces(tt.in); got != tt.want {
			t.Errorf("CorrectSpaces(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUpperFirst(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"seðlabankastjóri", "Seðlabankastjóri"},
		{"þingmaður", "Þingmaður"},
		{"Formaður", "Formaður"},
	}
	for _, tt := range tests {
		if got := UpperFirst(tt.in); got != tt.want {
			t.Errorf("UpperFirst(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Már Guðmundsson hættir", "Már Guðmundsson hættir"},
		{"<b>Már Guðmundsson</b> hættir", "Már Guðmundsson hættir"},
		{"Katrín <em>svarar</em> gagnrýni", "Katrín svarar gagnrýni"},
		{"<script>alert(1)</script>Frétt dagsins", "Frétt dagsins"},
	}
	for _, tt := range tests {
		if got := StripMarkup(tt.in); got != tt.want {
			t.Errorf("StripMarkup(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
