package ir

import "testing"

// TestInstructionSetIsClosed pins the Instruction sum type's membership: a
// removed or renamed opcode becomes a compile error here. It does not check
// that the VM's dispatch switch handles every listed opcode.
func TestInstructionSetIsClosed(t *testing.T) {
	var all = []Instruction{
		Nop{}, Panic{}, If{}, Loop{}, Break{}, Continue{}, Return{},
		Null{}, Num{}, Bool{}, Data{}, Arr{}, Obj{}, NativeFn{}, UserFnLit{},
		Move{}, Add{}, Sub{}, Mul{}, Div{}, Rem{}, Pow{},
		Lt{}, Lteq{}, Gt{}, Gteq{}, Eq{}, Neq{}, Not{}, ToStr{}, Len{},
		Load{}, LoadIndex{}, LoadProp{}, Store{}, StoreIndex{}, StoreProp{},
		Call{}, LoadGlobal{}, StoreGlobal{},
	}
	if len(all) == 0 {
		t.Fatal("expected at least one instruction variant")
	}
}

func TestUserFnCarriesRegisterAndCaptureLayout(t *testing.T) {
	fn := UserFn{
		RegisterLength: 3,
		ParamRegs:      []Register{0, 1},
		CaptureRegs:    []Register{2},
	}
	if fn.RegisterLength != 3 || len(fn.ParamRegs) != 2 || len(fn.CaptureRegs) != 1 {
		t.Fatalf("got %+v", fn)
	}
}
