package value

import (
	"testing"

	"github.com/aiscript-dev/aiscript-go/internal/utf16str"
)

func TestEqualStructuralForScalars(t *testing.T) {
	if !Equal(Num(1), Num(1)) {
		t.Errorf("expected equal nums to compare equal")
	}
	if Equal(Num(1), Num(2)) {
		t.Errorf("expected different nums to compare unequal")
	}
	if !Equal(Str(utf16str.FromUTF8("a")), Str(utf16str.FromUTF8("a"))) {
		t.Errorf("expected equal strs to compare equal, by value not identity")
	}
	if !Equal(Null(), Null()) {
		t.Errorf("expected null == null")
	}
	if Equal(Num(1), Str(utf16str.FromUTF8("1"))) {
		t.Errorf("expected different kinds to compare unequal")
	}
}

func TestEqualReferenceForHeapCells(t *testing.T) {
	a := ArrVal(NewArr(0))
	b := ArrVal(NewArr(0))
	if Equal(a, b) {
		t.Errorf("expected distinct array cells to compare unequal even though both are empty")
	}
	if !Equal(a, a) {
		t.Errorf("expected an array cell to equal itself")
	}
}

func TestObjPreservesInsertionOrder(t *testing.T) {
	o := NewObj(2)
	o.Set(utf16str.FromUTF8("b"), Num(2))
	o.Set(utf16str.FromUTF8("a"), Num(1))
	o.Set(utf16str.FromUTF8("b"), Num(20))

	keys := o.Keys()
	if len(keys) != 2 || keys[0].String8() != "b" || keys[1].String8() != "a" {
		t.Fatalf("expected keys [b a] in insertion order, got %v", keys)
	}
	v, ok := o.Get(utf16str.FromUTF8("b"))
	if !ok || v.AsNum() != 20 {
		t.Errorf("expected updated value 20 for key b, got %v (ok=%v)", v, ok)
	}
}

func TestObjMissingKeyLooksUpNull(t *testing.T) {
	o := NewObj(0)
	if _, ok := o.Get(utf16str.FromUTF8("missing")); ok {
		t.Errorf("expected missing key lookup to report not-found")
	}
}

func TestNewArrStartsUninitialized(t *testing.T) {
	a := NewArr(3)
	if len(a.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(a.Items))
	}
	for i, item := range a.Items {
		if item.Kind() != KindUninitialized {
			t.Errorf("item %d: expected Uninitialized, got %v", i, item.Kind())
		}
	}
}

func TestReturnCtlUnwraps(t *testing.T) {
	ctl := ReturnCtl(Num(42))
	if ctl.Kind() != KindReturn {
		t.Fatalf("expected KindReturn, got %v", ctl.Kind())
	}
	if ctl.ReturnValue().AsNum() != 42 {
		t.Errorf("expected unwrapped value 42, got %v", ctl.ReturnValue())
	}
}

func TestIsTruthyRequiresBool(t *testing.T) {
	if Num(1).IsTruthy() {
		t.Errorf("expected non-bool values to never be truthy")
	}
	if !Bool(true).IsTruthy() {
		t.Errorf("expected Bool(true) to be truthy")
	}
	if Bool(false).IsTruthy() {
		t.Errorf("expected Bool(false) to not be truthy")
	}
}

func TestTypeName(t *testing.T) {
	cases := map[Kind]string{
		KindNull: "null", KindBool: "bool", KindNum: "num",
		KindStr: "str", KindObj: "obj", KindArr: "arr", KindFn: "fn",
	}
	for k, want := range cases {
		if got := k.TypeName(); got != want {
			t.Errorf("%v: expected %q, got %q", k, want, got)
		}
	}
}
