package main

import (
	"strings"
	"testing"

	"github.com/goth-lang/goth/internal/ast"
	"github.com/goth-lang/goth/internal/format"
	"github.com/goth-lang/goth/internal/ser"
)

func TestInputFormat(t *testing.T) {
	tests := []struct {
		flag, path string
		data       string
		want       string
	}{
		{"gbin", "x.gast", "", "gbin"},
		{"", "module.gbin", "", "gbin"},
		{"", "Module.GAST", "", "gast"},
		{"", "", "GOTH\x01\x00", "gbin"},
		{"", "", `{"format":"gast"}`, "gast"},
	}
	for _, tt := range tests {
		if got := inputFormat(tt.flag, tt.path, []byte(tt.data)); got != tt.want {
			t.Errorf("inputFormat(%q, %q, %q) = %q, want %q",
				tt.flag, tt.path, tt.data, got, tt.want)
		}
	}
}

func TestConvertPipeline(t *testing.T) {
	m := ast.NewModule("demo",
		&ast.LetDecl{Name: "two", Value: ast.Add(ast.Int(1), ast.Int(1))},
	)
	text, err := ser.EncodeModuleText(m)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	bin, err := convert(text, "gast", "gbin", format.DefaultOptions())
	if err != nil {
		t.Fatalf("gast to gbin: %v", err)
	}
	rendered, err := convert(bin, "gbin", "goth", format.ASCIIOptions())
	if err != nil {
		t.Fatalf("gbin to goth: %v", err)
	}
	want := "module demo\n\nlet two <- 1 + 1\n"
	if string(rendered) != want {
		t.Errorf("rendered %q, want %q", rendered, want)
	}

	if _, err := convert([]byte("GOTH"), "gbin", "goth", format.DefaultOptions()); err == nil {
		t.Error("truncated input did not fail")
	}
	if _, err := convert(text, "goth", "gast", format.DefaultOptions()); err == nil ||
		!strings.Contains(err.Error(), "unknown input encoding") {
		t.Errorf("bad -from: err = %v", err)
	}
}
