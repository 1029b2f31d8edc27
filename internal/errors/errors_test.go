package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deuce-x/deuce/pkg/element"
	"github.com/deuce-x/deuce/pkg/loop"
	"github.com/deuce-x/deuce/pkg/render"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "render error",
			code:    "D001",
			wantMsg: "Unsupported element",
			wantCat: CategoryRender,
		},
		{
			name:    "config error",
			code:    "D101",
			wantMsg: "Invalid config file",
			wantCat: CategoryConfig,
		},
		{
			name:    "store error",
			code:    "D200",
			wantMsg: "Unknown store backend",
			wantCat: CategoryStore,
		},
		{
			name:    "unknown error code",
			code:    "D999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestDeuceError_Error(t *testing.T) {
	if got, want := New("D004").Error(), "D004: Render loop closed"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got, want := Newf(CategoryCLI, "demo %q", "x").Error(), `demo "x"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	wrapped := New("D201").Wrap(fmt.Errorf("disk full"))
	if got, want := wrapped.Error(), "D201: Store load failed: disk full"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWithLocation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deuce.yaml")
	content := "log:\n  level: debug\ninspector:\n  port: nope\nstore:\n  backend: memory\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	err := New("D101").WithLocation(path, 4, 9)
	if err.Location.String() != path+":4:9" {
		t.Errorf("Location = %q", err.Location.String())
	}
	if len(err.Context) != 5 {
		t.Fatalf("Context = %d lines, want 5", len(err.Context))
	}
	if err.Context[2] != "  port: nope" {
		t.Errorf("Context[2] = %q", err.Context[2])
	}

	DisableColors()
	defer EnableColors()
	if out := err.Format(); !strings.Contains(out, "→    4 │   port: nope") {
		t.Errorf("Format() does not mark the line:\n%s", out)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("D300").WithSuggestion("Run deuce demos").Wrap(fmt.Errorf("no demo %q", "x"))
	out := err.Format()
	for _, want := range []string{"ERROR D300: Unknown demo", "Hint: Run deuce demos", `Cause: no demo "x"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("Format() contains color codes with colors disabled")
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("D102").WithSuggestion("use debug").Wrap(fmt.Errorf("level %q", "loud"))
	var got map[string]any
	if jerr := json.Unmarshal([]byte(err.FormatJSON()), &got); jerr != nil {
		t.Fatalf("FormatJSON() is not JSON: %v", jerr)
	}
	if got["code"] != "D102" || got["category"] != "config" || got["cause"] != `level "loud"` {
		t.Errorf("FormatJSON() = %v", got)
	}
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"classification", &render.ClassificationError{Type: "chan int"}, "D001"},
		{"unsupported", &element.UnsupportedComponentError{Type: "int"}, "D002"},
		{"component", fmt.Errorf("wrapped: %w", &render.ComponentError{Kind: element.KindFuture, Err: stderrors.New("x")}), "D003"},
		{"loop closed", loop.ErrClosed, "D004"},
		{"other", stderrors.New("plain"), "D302"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromError(tt.err, "D302")
			if got.Code != tt.want {
				t.Errorf("Code = %q, want %q", got.Code, tt.want)
			}
			if !Is(got, tt.err) {
				t.Error("FromError() does not wrap the original error")
			}
		})
	}

	if FromError(nil, "D302") != nil {
		t.Error("FromError(nil) != nil")
	}
	existing := New("D100")
	if FromError(fmt.Errorf("ctx: %w", existing), "D302") != existing {
		t.Error("FromError() did not return the wrapped DeuceError")
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	PrintError(&buf, stderrors.New("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("PrintError() = %q", buf.String())
	}
	buf.Reset()
	PrintError(&buf, New("D100"))
	if !strings.Contains(buf.String(), "D100: Config file not found") {
		t.Errorf("PrintError() = %q", buf.String())
	}
}

func TestRegistryCodesHaveMessages(t *testing.T) {
	for _, code := range GetAllCodes() {
		tmpl, ok := GetTemplate(code)
		if !ok || tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("code %s has an incomplete template", code)
		}
	}
}
