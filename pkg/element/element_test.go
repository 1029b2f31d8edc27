package element

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindAbsent, "Absent"},
		{KindPrimitive, "Primitive"},
		{KindNode, "Node"},
		{KindComposite, "Composite"},
		{KindFuture, "Future"},
		{KindStream, "Stream"},
		{KindUnknown, "Unknown"},
		{Kind(200), "Invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOf(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantKind Kind
		wantText string
	}{
		{"nil", nil, KindAbsent, ""},
		{"string", "hello", KindPrimitive, "hello"},
		{"empty string", "", KindPrimitive, ""},
		{"true", true, KindPrimitive, "true"},
		{"false", false, KindPrimitive, "false"},
		{"int", 12345, KindPrimitive, "12345"},
		{"negative int64", int64(-3), KindPrimitive, "-3"},
		{"uint8", uint8(7), KindPrimitive, "7"},
		{"float", 1.5, KindPrimitive, "1.5"},
		{"whole float", float64(3), KindPrimitive, "3"},
		{"any slice", []any{"a", 1}, KindComposite, ""},
		{"string slice", []string{"a", "b"}, KindComposite, ""},
		{"element", Text("x"), KindPrimitive, "x"},
		{"nil element pointer", (*Element)(nil), KindAbsent, ""},
		{"struct", struct{ A int }{1}, KindUnknown, ""},
		{"map", map[string]int{"a": 1}, KindUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Of(tt.value)
			if got.Kind != tt.wantKind {
				t.Fatalf("Of(%v).Kind = %v, want %v", tt.value, got.Kind, tt.wantKind)
			}
			if got.Text != tt.wantText {
				t.Errorf("Of(%v).Text = %q, want %q", tt.value, got.Text, tt.wantText)
			}
		})
	}
}

func TestOfKeepsUnknownValue(t *testing.T) {
	v := struct{ A int }{42}
	e := Of(v)
	if e.Value != v {
		t.Errorf("Value = %v, want %v", e.Value, v)
	}
}

func TestOfAsyncKinds(t *testing.T) {
	f := Resolved("x")
	if got := Of(f.Future).Kind; got != KindFuture {
		t.Errorf("Of(Future).Kind = %v, want Future", got)
	}
	s := Generate(func(ctx context.Context, y *Yielder) (Element, error) { return Absent, nil })
	if got := Of(s.Stream).Kind; got != KindStream {
		t.Errorf("Of(Stream).Kind = %v, want Stream", got)
	}
}

func TestListFlattensNothing(t *testing.T) {
	e := List("a", List("b", "c"), nil)
	if e.Kind != KindComposite {
		t.Fatalf("Kind = %v, want Composite", e.Kind)
	}
	if len(e.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(e.Items))
	}
	if e.Items[1].Kind != KindComposite {
		t.Errorf("Items[1].Kind = %v, want Composite", e.Items[1].Kind)
	}
	if !e.Items[2].IsAbsent() {
		t.Errorf("Items[2] should be absent")
	}
}

func TestConditionals(t *testing.T) {
	if !If(false, Text("x")).IsAbsent() {
		t.Error("If(false) should be absent")
	}
	if If(true, Text("x")).Text != "x" {
		t.Error("If(true) should return the element")
	}
	if IfElse(false, Text("a"), Text("b")).Text != "b" {
		t.Error("IfElse(false) should return the second element")
	}

	r := Range([]string{"a", "b"}, func(s string, i int) Element { return Textf("%d:%s", i, s) })
	if len(r.Items) != 2 || r.Items[1].Text != "1:b" {
		t.Errorf("Range() = %+v", r.Items)
	}
}

func TestResolvedAwait(t *testing.T) {
	e := Resolved(3)
	got, err := e.Future.Await(context.Background())
	if err != nil {
		t.Fatalf("Await() error = %v", err)
	}
	if got.Text != "3" {
		t.Errorf("Await() = %q, want %q", got.Text, "3")
	}
}

func TestAsyncRunsOnce(t *testing.T) {
	calls := 0
	e := Async(func(ctx context.Context) (Element, error) {
		calls++
		return Text("once"), nil
	})

	for i := 0; i < 3; i++ {
		got, err := e.Future.Await(context.Background())
		if err != nil {
			t.Fatalf("Await() error = %v", err)
		}
		if got.Text != "once" {
			t.Errorf("Await() = %q, want once", got.Text)
		}
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestAsyncError(t *testing.T) {
	boom := errors.New("boom")
	e := Async(func(ctx context.Context) (Element, error) { return Absent, boom })
	if _, err := e.Future.Await(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Await() error = %v, want %v", err, boom)
	}
}

func TestAsyncAwaitCancelled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	e := Async(func(ctx context.Context) (Element, error) {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return Absent, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := e.Future.Await(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Await() error = %v, want deadline exceeded", err)
	}
}
