package metadata

import "testing"

func TestNormalizeDate(t *testing.T) {
	r := NewResolver(DefaultTables())

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"textual spanish", "15 de enero de 2024", "2024-01-15"},
		{"textual single digit day", "5 de marzo de 2023", "2023-03-05"},
		{"textual december", "31 de diciembre de 2022", "2022-12-31"},
		{"iso", "2024-01-15", "2024-01-15"},
		{"slash day first", "15/01/2024", "2024-01-15"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"unparseable stays unchanged", "no es una fecha", "no es una fecha"},
		{"unknown month stays unchanged", "15 de brumario de 2024", "15 de brumario de 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.NormalizeDate(tt.input); got != tt.expected {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFindDateCandidate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"textual", "Promulgada el 15 de enero de 2024 en La Paz", "15 de enero de 2024"},
		{"slash", "Publicado el 01/02/2024", "01/02/2024"},
		{"iso", "Vigente desde 2024-03-01", "2024-03-01"},
		{"dash", "Emitida el 1-2-2024", "1-2-2024"},
		{"none", "Sin fecha reconocible", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindDateCandidate(tt.input); got != tt.expected {
				t.Errorf("FindDateCandidate(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
