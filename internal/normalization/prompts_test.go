package normalization

import (
	"reflect"
	"testing"
)

func TestSplitPrompts(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "numbered_with_dot",
			raw:  "1. ¿Qué recuerdas de tu familia?\n2. ¿Quién te cuidaba?\n",
			want: []string{"¿Qué recuerdas de tu familia?", "¿Quién te cuidaba?"},
		},
		{
			name: "numbered_with_paren",
			raw:  "1) Primera pregunta\n2) Segunda pregunta",
			want: []string{"Primera pregunta", "Segunda pregunta"},
		},
		{
			name: "bare_number_prefix",
			raw:  "3 ¿Cómo era tu escuela?",
			want: []string{"¿Cómo era tu escuela?"},
		},
		{
			name: "unnumbered_lines_pass_through",
			raw:  "¿Qué juegos jugabas?\n¿Con quién?",
			want: []string{"¿Qué juegos jugabas?", "¿Con quién?"},
		},
		{
			name: "blank_and_whitespace_lines_dropped",
			raw:  "1. Una pregunta\n\n   \n2. Otra pregunta\n",
			want: []string{"Una pregunta", "Otra pregunta"},
		},
		{
			name: "line_empty_after_marker_strip_dropped",
			raw:  "1.\n2. Pregunta real",
			want: []string{"Pregunta real"},
		},
		{
			name: "leading_whitespace_before_marker",
			raw:  "  1. Con sangría",
			want: []string{"Con sangría"},
		},
		{
			name: "empty_input",
			raw:  "",
			want: []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitPrompts(tc.raw)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("SplitPrompts(%q)=%v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}
