package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestKeywordExtract(t *testing.T) {
	cases := []struct {
		name     string
		response string
		err      error
		want     []string
	}{
		{
			name:     "valid_array_returned_verbatim",
			response: `["familia", "recuerdos", "casa"]`,
			want:     []string{"familia", "recuerdos", "casa"},
		},
		{
			name:     "fenced_json_block_tolerated",
			response: "```json\n[\"escuela\", \"juegos\"]\n```",
			want:     []string{"escuela", "juegos"},
		},
		{
			name:     "non_array_object_yields_empty",
			response: `{"keywords": ["familia"]}`,
			want:     []string{},
		},
		{
			name:     "invalid_syntax_yields_empty",
			response: `["familia", "recuerdos"`,
			want:     []string{},
		},
		{
			name:     "refusal_prose_yields_empty",
			response: "Lo siento, no puedo extraer palabras clave de ese texto.",
			want:     []string{},
		},
		{
			name:     "json_null_yields_empty",
			response: "null",
			want:     []string{},
		},
		{
			name: "upstream_error_yields_empty",
			err:  errors.New("openai http 500: boom"),
			want: []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ai := &fakeAI{
				keywordFn: func(system, user string) (string, error) {
					return tc.response, tc.err
				},
			}
			svc := NewKeywordService(newTestLogger(t), ai)

			got := svc.Extract(context.Background(), "¿Qué recuerdas de tu familia?")
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Extract()=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestDecodeStringArrayNumbersAreNotStrings(t *testing.T) {
	if _, ok := decodeStringArray(`[1, 2, 3]`); ok {
		t.Fatal("expected decode failure for a number array")
	}
}
