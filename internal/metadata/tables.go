// Package metadata derives typed legal metadata (norm type, number, date,
// issuing entity, topics) from gazette titles and text.
package metadata

// Tables holds the constant lookup tables the resolver works from. They are
// built once at startup and injected, so tests can substitute smaller ones.
type Tables struct {
	// TiposNorma is scanned in order; the first word-boundary match wins.
	TiposNorma []string

	// TiposExtra disambiguates norm types the plain enumeration misses.
	TiposExtra []TipoPattern

	// Temas maps a topic tag to the keywords that imply it.
	Temas []TemaKeywords

	// Entidades is scanned in order. An entry with UseMatch returns the
	// matched phrase itself instead of the fixed name.
	Entidades []EntidadPattern

	// Meses maps lowercase Spanish month names to two-digit month numbers.
	Meses map[string]string
}

// TipoPattern pairs a norm-type label with its disambiguating pattern.
type TipoPattern struct {
	Nombre  string
	Pattern string
}

// TemaKeywords pairs a topic tag with its trigger keywords.
type TemaKeywords struct {
	Tema     string
	Keywords []string
}

// EntidadPattern pairs an issuing-entity label with its pattern.
type EntidadPattern struct {
	Nombre   string
	Pattern  string
	UseMatch bool
}

// DefaultTables returns the lookup tables for Bolivian gazette documents.
func DefaultTables() *Tables {
	return &Tables{
		TiposNorma: []string{
			"LEY",
			"DECRETO SUPREMO",
			"RESOLUCIÓN SUPREMA",
			"RESOLUCIÓN MINISTERIAL",
			"RESOLUCIÓN ADMINISTRATIVA",
			"RESOLUCIÓN BI-MINISTERIAL",
			"AUTO SUPREMO",
			"SENTENCIA CONSTITUCIONAL",
			"ORDENANZA MUNICIPAL",
		},
		TiposExtra: []TipoPattern{
			{Nombre: "DECRETO LEY", Pattern: `\bDECRETO\s+LEY\b`},
			{Nombre: "LEY MUNICIPAL", Pattern: `\bLEY\s+MUNICIPAL\b`},
			{Nombre: "RESOLUCIÓN SUPREMA", Pattern: `\bRESOLUCI[OÓ]N\s+SUPREMA\b`},
			{Nombre: "RESOLUCIÓN MINISTERIAL", Pattern: `\bRESOLUCI[OÓ]N\s+MINISTERIAL\b`},
		},
		Temas: []TemaKeywords{
			{Tema: "EDUCACIÓN", Keywords: []string{"educación", "educativo", "escuela", "universidad", "estudiante", "maestro"}},
			{Tema: "SALUD", Keywords: []string{"salud", "medicina", "hospital", "médico", "sanitario", "enfermedad"}},
			{Tema: "ECONOMÍA", Keywords: []string{"económico", "economía", "comercio", "impuesto", "tributario", "financiero"}},
			{Tema: "MEDIO AMBIENTE", Keywords: []string{"medio ambiente", "ambiental", "ecológico", "contaminación", "recursos naturales"}},
			{Tema: "JUSTICIA", Keywords: []string{"justicia", "judicial", "penal", "delito", "tribunal", "sentencia"}},
			{Tema: "TRABAJO", Keywords: []string{"laboral", "trabajo", "empleado", "sindicato", "salario"}},
			{Tema: "MINERÍA", Keywords: []string{"minería", "minero", "explotación minera", "cooperativa minera"}},
			{Tema: "HIDROCARBUROS", Keywords: []string{"hidrocarburos", "petróleo", "gas", "ypfb"}},
			{Tema: "DEFENSA", Keywords: []string{"defensa", "militar", "fuerzas armadas"}},
			{Tema: "SEGURIDAD", Keywords: []string{"seguridad", "policía", "orden público"}},
			{Tema: "AGRICULTURA", Keywords: []string{"agricultura", "agrícola", "agropecuario", "rural", "campesino"}},
			{Tema: "VIVIENDA", Keywords: []string{"vivienda", "construcción", "urbanismo"}},
			{Tema: "TRANSPORTE", Keywords: []string{"transporte", "vial", "tránsito", "carretera"}},
			{Tema: "TELECOMUNICACIONES", Keywords: []string{"telecomunicaciones", "comunicación", "internet", "telefonía"}},
			{Tema: "TURISMO", Keywords: []string{"turismo", "turístico", "patrimonio"}},
		},
		Entidades: []EntidadPattern{
			{Nombre: "PRESIDENCIA", Pattern: `\bPRESIDEN(?:CIA|TE)\b`},
			{Nombre: "ASAMBLEA LEGISLATIVA", Pattern: `\bASAMBLEA\s+LEGISLATIVA\b`},
			{Nombre: "CONGRESO", Pattern: `\bCONGRESO\b`},
			{Nombre: "MINISTERIO DE ECONOMÍA", Pattern: `\bMINISTERIO\s+DE\s+ECONOM[IÍ]A\b`},
			{Nombre: "MINISTERIO DE SALUD", Pattern: `\bMINISTERIO\s+DE\s+SALUD\b`},
			{Nombre: "MINISTERIO DE EDUCACIÓN", Pattern: `\bMINISTERIO\s+DE\s+EDUCACI[OÓ]N\b`},
			{Nombre: "MINISTERIO DE JUSTICIA", Pattern: `\bMINISTERIO\s+DE\s+JUSTICIA\b`},
			{Nombre: "MINISTERIO DE TRABAJO", Pattern: `\bMINISTERIO\s+DE\s+TRABAJO\b`},
			{Nombre: "MINISTERIO", Pattern: `\bMINISTERIO\s+DE\s+[A-ZÁÉÍÓÚÑ\s]+`, UseMatch: true},
			{Nombre: "TRIBUNAL CONSTITUCIONAL", Pattern: `\bTRIBUNAL\s+CONSTITUCIONAL\b`},
			{Nombre: "CORTE SUPREMA", Pattern: `\bCORTE\s+SUPREMA\b`},
		},
		Meses: map[string]string{
			"enero": "01", "febrero": "02", "marzo": "03", "abril": "04",
			"mayo": "05", "junio": "06", "julio": "07", "agosto": "08",
			"septiembre": "09", "octubre": "10", "noviembre": "11", "diciembre": "12",
		},
	}
}
