package filter

import (
	"errors"
	"strings"
	"testing"
)

func TestParse_WellFormed(t *testing.T) {
	tests := []struct {
		name      string
		condition string
	}{
		{"simple equality", "a = 1"},
		{"less than", "b < 2"},
		{"greater than", "c > 1"},
		{"quoted literal", `name = "Bob"`},
		{"single quoted literal", "name = 'Bob'"},
		{"and chain", "a = 0 AND b = 1 AND c = 2"},
		{"or chain", "a = 0 OR b = 0 OR c = 0"},
		{"mixed precedence", "1 OR a = 999 AND b = 999"},
		{"parenthesized", "a = 999 AND (c = 2 OR 1)"},
		{"nested parens", "((a = 1 AND b = 2) OR 1) AND (0 OR 1)"},
		{"bare digit atom", "1"},
		{"lowercase operators", "a = 1 and b = 2 or c = 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, err := Parse(tt.condition)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.condition, err)
			}
			if cond == nil {
				t.Fatal("Parse() returned nil condition")
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name      string
		condition string
	}{
		{"dangling field operand", "a"},
		{"dangling and", "a = 1 AND"},
		{"missing right operand", "a ="},
		{"missing left operand", "= 1"},
		{"unbalanced open paren", "(a = 1"},
		{"unbalanced close paren", "a = 1)"},
		{"empty parens", "()"},
		{"unterminated string", `name = "half`},
		{"invalid character", "a = 1 & b = 2"},
		{"doubled operator", "a < = 1"},
		{"bare quoted literal", `"alone"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.condition); err == nil {
				t.Errorf("Parse(%q) expected an error", tt.condition)
			}
		})
	}
}

func TestParse_BlankAlwaysTrue(t *testing.T) {
	for _, condition := range []string{"", "   ", "\t\n"} {
		cond, err := Parse(condition)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", condition, err)
		}
		got, err := cond.Eval(mapRow{})
		if err != nil {
			t.Fatalf("Eval() error = %v", err)
		}
		if !got {
			t.Errorf("Parse(%q).Eval() = false, want true", condition)
		}
	}
}

func TestParse_NilConditionIsTrue(t *testing.T) {
	var cond *Condition
	got, err := cond.Eval(mapRow{})
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if !got {
		t.Error("nil condition evaluated to false, want true")
	}
}

func TestParse_Precedence(t *testing.T) {
	// AND binds tighter than OR: a = 1 OR b = 2 AND c = 3
	// must parse as a = 1 OR (b = 2 AND c = 3).
	cond, err := Parse("a = 1 OR b = 2 AND c = 3")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	root, ok := cond.root.(*BinaryExpr)
	if !ok {
		t.Fatalf("expected *BinaryExpr root, got %T", cond.root)
	}
	if root.Operator != TokenOr {
		t.Errorf("root operator = %v, want OR", root.Operator)
	}

	right, ok := root.Right.(*BinaryExpr)
	if !ok {
		t.Fatalf("expected *BinaryExpr right side, got %T", root.Right)
	}
	if right.Operator != TokenAnd {
		t.Errorf("right operator = %v, want AND", right.Operator)
	}
}

func TestParse_LeftAssociative(t *testing.T) {
	// a = 1 AND b = 2 AND c = 3 must parse as ((a AND b) AND c).
	cond, err := Parse("a = 1 AND b = 2 AND c = 3")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	root, ok := cond.root.(*BinaryExpr)
	if !ok {
		t.Fatalf("expected *BinaryExpr root, got %T", cond.root)
	}
	if _, ok := root.Left.(*BinaryExpr); !ok {
		t.Errorf("expected nested *BinaryExpr on the left, got %T", root.Left)
	}
	if _, ok := root.Right.(*CompareExpr); !ok {
		t.Errorf("expected *CompareExpr on the right, got %T", root.Right)
	}
}

func TestParse_DepthLimit(t *testing.T) {
	deep := strings.Repeat("(", MaxExpressionDepth+1) + "1" + strings.Repeat(")", MaxExpressionDepth+1)
	_, err := Parse(deep)
	if !errors.Is(err, ErrExpressionTooDeep) {
		t.Errorf("Parse() error = %v, want ErrExpressionTooDeep", err)
	}
}

func TestParse_LengthLimit(t *testing.T) {
	long := "a = " + strings.Repeat("1", MaxConditionLength)
	_, err := Parse(long)
	if !errors.Is(err, ErrConditionTooLong) {
		t.Errorf("Parse() error = %v, want ErrConditionTooLong", err)
	}
}

func TestCondition_String(t *testing.T) {
	const text = "a = 1 AND b = 2"
	cond, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cond.String() != text {
		t.Errorf("String() = %q, want %q", cond.String(), text)
	}
}
