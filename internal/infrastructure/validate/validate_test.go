package validate

import (
	"strings"
	"testing"
)

func TestRequired(t *testing.T) {
	v := Required()

	if err := v("title"); err != nil {
		t.Fatalf("non-empty value rejected: %v", err)
	}
	if err := v(""); err == nil {
		t.Fatal("empty value accepted")
	}
	if err := v("   "); err == nil {
		t.Fatal("whitespace-only value accepted")
	}
}

func TestFieldLabelsErrors(t *testing.T) {
	v := Field("ticket", Required())

	err := v("")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "ticket") {
		t.Fatalf("error %q does not name the field", err)
	}
}

func TestCompose(t *testing.T) {
	v := Compose(Required(), MaxLength(5))

	if err := v("abc"); err != nil {
		t.Fatalf("valid value rejected: %v", err)
	}
	if err := v(""); err == nil {
		t.Fatal("empty value accepted")
	}
	if err := v("abcdef"); err == nil {
		t.Fatal("overlong value accepted")
	}
}
