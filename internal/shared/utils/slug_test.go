package utils

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugExamples(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{"accents folded", []string{"São Paulo"}, "sao-paulo"},
		{"specials collapsed", []string{"C++ & Python"}, "c-python"},
		{"whitespace only", []string{"   "}, ""},
		{"no parts", nil, ""},
		{"two parts", []string{"Alan", "Turing"}, "alan-turing"},
		{"part with year", []string{"Congresso", "2024"}, "congresso-2024"},
		{"empty parts skipped", []string{"", "Conf", " "}, "conf"},
		{"diacritics pt-br", []string{"Edição Avançada"}, "edicao-avancada"},
		{"already clean", []string{"sbes-2023"}, "sbes-2023"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.parts...))
		})
	}
}

func TestSlugShape(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	inputs := []string{
		"Hello, World!",
		"  múltiplos   espaços  ",
		"UPPER_case.mixed",
		"123 -- 456",
		"ção ção ção",
	}
	for _, in := range inputs {
		got := Slug(in)
		if got == "" {
			t.Fatalf("Slug(%q) unexpectedly empty", in)
		}
		assert.Regexp(t, valid, got, "input %q", in)
		assert.False(t, strings.HasPrefix(got, "-"))
		assert.False(t, strings.HasSuffix(got, "-"))
	}
}

func TestSlugLengthCap(t *testing.T) {
	long := strings.Repeat("abcde ", 40)
	got := Slug(long)
	assert.LessOrEqual(t, len(got), 100)
	assert.False(t, strings.HasSuffix(got, "-"))
}
