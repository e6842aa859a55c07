package parser

import (
	"testing"
)

const decretoCompleto = `VISTOS: el informe. CONSIDERANDO: Que es necesario. Que además conviene. POR TANTO: SE DECRETA: ARTÍCULO 1.- Apruébese el reglamento. ARTÍCULO 2.- Publíquese. DISPOSICIÓN FINAL.- PRIMERA.- Entra en vigencia hoy.`

func TestSegment_DecretoCompleto(t *testing.T) {
	p := NewParser()

	sections := p.Segment(decretoCompleto)

	if sections.Vistos != "el informe." {
		t.Errorf("Expected vistos 'el informe.', got %q", sections.Vistos)
	}

	wantConsiderandos := []string{"Que es necesario.", "Que además conviene."}
	if len(sections.Considerando) != len(wantConsiderandos) {
		t.Fatalf("Expected %d considerandos, got %d: %q",
			len(wantConsiderandos), len(sections.Considerando), sections.Considerando)
	}

	for i, want := range wantConsiderandos {
		if sections.Considerando[i] != want {
			t.Errorf("Considerando[%d] = %q, want %q", i, sections.Considerando[i], want)
		}
	}

	if len(sections.Articulos) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(sections.Articulos))
	}

	if sections.Articulos[0].Numero != "1" || sections.Articulos[0].Contenido != "Apruébese el reglamento." {
		t.Errorf("Unexpected first article: %+v", sections.Articulos[0])
	}

	if sections.Articulos[1].Numero != "2" || sections.Articulos[1].Contenido != "Publíquese." {
		t.Errorf("Unexpected second article: %+v", sections.Articulos[1])
	}

	if len(sections.DisposicionesFinales) != 1 || sections.DisposicionesFinales[0] != "Entra en vigencia hoy." {
		t.Errorf("Unexpected disposiciones finales: %q", sections.DisposicionesFinales)
	}
}

func TestSegment_EmptySectionsAreAbsent(t *testing.T) {
	p := NewParser()

	// POR TANTO followed immediately by SE DECRETA carries no body of its own.
	sections := p.Segment(decretoCompleto)

	if sections.PorTanto != "" {
		t.Errorf("Expected empty POR TANTO, got %q", sections.PorTanto)
	}

	if sections.DecretaResuelve != "" {
		t.Errorf("Expected empty DECRETA body, got %q", sections.DecretaResuelve)
	}
}

func TestSegment_EmptyInput(t *testing.T) {
	p := NewParser()

	sections := p.Segment("")

	if sections.Vistos != "" || len(sections.Considerando) != 0 || len(sections.Articulos) != 0 {
		t.Errorf("Expected empty sections for empty input, got %+v", sections)
	}
}

func TestSegment_MissingSections(t *testing.T) {
	p := NewParser()

	sections := p.Segment("RESOLUCIÓN MINISTERIAL N° 100. SE RESUELVE: ARTÍCULO 1.- Desígnase al funcionario.")

	if sections.Vistos != "" {
		t.Errorf("Expected no vistos, got %q", sections.Vistos)
	}

	if len(sections.Considerando) != 0 {
		t.Errorf("Expected no considerandos, got %q", sections.Considerando)
	}

	if len(sections.Articulos) != 1 {
		t.Fatalf("Expected 1 article, got %d", len(sections.Articulos))
	}

	if sections.Articulos[0].Contenido != "Desígnase al funcionario." {
		t.Errorf("Unexpected article content: %q", sections.Articulos[0].Contenido)
	}
}

func TestSegment_ConsiderandoSplitOnNewlines(t *testing.T) {
	p := NewParser()

	text := "CONSIDERANDO:\nQue la primera razón existe.\nQue la segunda razón también.\nPOR TANTO: se aprueba."

	sections := p.Segment(text)

	if len(sections.Considerando) != 2 {
		t.Fatalf("Expected 2 considerandos, got %d: %q", len(sections.Considerando), sections.Considerando)
	}

	if sections.Considerando[0] != "Que la primera razón existe." {
		t.Errorf("Unexpected first considerando: %q", sections.Considerando[0])
	}
}

func TestSegment_ConsiderandoWithoutQuePrefix(t *testing.T) {
	p := NewParser()

	sections := p.Segment("CONSIDERANDO: el país requiere la norma. POR TANTO: se aprueba.")

	if len(sections.Considerando) != 1 {
		t.Fatalf("Expected 1 considerando, got %d", len(sections.Considerando))
	}

	if sections.Considerando[0] != "Que el país requiere la norma." {
		t.Errorf("Expected re-prefixed considerando, got %q", sections.Considerando[0])
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"crlf", "uno\r\ndos", "uno\ndos"},
		{"space runs", "uno    dos", "uno dos"},
		{"newline runs", "uno\n\n\n\ndos", "uno\n\ndos"},
		{"separator run", "uno ---------- dos", "uno dos"},
		{"trim", "  uno dos  ", "uno dos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		decretoCompleto,
		"uno  dos\r\n\r\n\r\ntres ========== cuatro",
		"  VISTOS:   el  expediente  ",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)

		if once != twice {
			t.Errorf("Normalize is not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestExtractSigners(t *testing.T) {
	p := NewParser()

	text := "ARTÍCULO 1.- Publíquese.\nRegístrese, comuníquese y archívese.\nEVO MORALES AYMA\nMinistro de la Presidencia\nLUIS ALBERTO ARCE CATACORA"

	signers := p.ExtractSigners(text)

	if len(signers) != 2 {
		t.Fatalf("Expected 2 signers, got %d: %q", len(signers), signers)
	}

	if signers[0] != "EVO MORALES AYMA" {
		t.Errorf("Unexpected first signer: %q", signers[0])
	}

	if signers[1] != "LUIS ALBERTO ARCE CATACORA" {
		t.Errorf("Unexpected second signer: %q", signers[1])
	}
}

func TestExtractSigners_NoClosingFormula(t *testing.T) {
	p := NewParser()

	if signers := p.ExtractSigners("ARTÍCULO 1.- Texto sin cierre."); signers != nil {
		t.Errorf("Expected no signers, got %q", signers)
	}
}
