package fcbuffer

import "testing"

func TestParseTypeExprSimple(t *testing.T) {
	expr, err := parseTypeExpr("uint8")
	if err != nil {
		t.Fatalf("parseTypeExpr: %v", err)
	}
	if expr.kind != exprName || expr.name != "uint8" {
		t.Fatalf("got %+v", expr)
	}
}

func TestParseTypeExprOptionalVector(t *testing.T) {
	expr, err := parseTypeExpr("string[]?")
	if err != nil {
		t.Fatalf("parseTypeExpr: %v", err)
	}
	if expr.kind != exprOptional {
		t.Fatalf("expected outer optional, got %+v", expr)
	}
	if expr.inner.kind != exprVector {
		t.Fatalf("expected inner vector, got %+v", expr.inner)
	}
	if expr.inner.inner.kind != exprName || expr.inner.inner.name != "string" {
		t.Fatalf("expected leaf name string, got %+v", expr.inner.inner)
	}
}

func TestParseTypeExprExplicitVector(t *testing.T) {
	expr, err := parseTypeExpr("vector[Person]")
	if err != nil {
		t.Fatalf("parseTypeExpr: %v", err)
	}
	if expr.kind != exprVector || expr.inner.name != "Person" {
		t.Fatalf("got %+v", expr)
	}
}

func TestParseTypeExprRejectsGarbage(t *testing.T) {
	if _, err := parseTypeExpr("vector[string"); err == nil {
		t.Fatal("expected error for unterminated vector[")
	}
	if _, err := parseTypeExpr("int[]extra"); err == nil {
		t.Fatal("expected error for trailing garbage")
	}
}

func TestResolveTypeExprComposesWrappers(t *testing.T) {
	lookup := func(name string) (Codec, error) {
		if name == "uint8" {
			return &uintCodec{name: "uint8", bits: 8}, nil
		}
		return nil, ErrMissingType
	}
	expr, err := parseTypeExpr("uint8[]?")
	if err != nil {
		t.Fatalf("parseTypeExpr: %v", err)
	}
	codec, err := resolveTypeExpr(expr, lookup)
	if err != nil {
		t.Fatalf("resolveTypeExpr: %v", err)
	}
	if codec.Required() {
		t.Fatal("expected optional wrapper to report Required() == false")
	}
}
