package slide

import (
	"errors"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/slide/model"
)

func TestRegistryDispatch(t *testing.T) {
	reg := NewRegistry()
	counter := newCountingRenderer()
	reg.Register(kindRect, counter)

	r, err := reg.Dispatch(newRect("a", 0, 0, "#000000"))
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if r != ObjectRenderer(counter) {
		t.Error("Dispatch returned the wrong renderer")
	}

	if _, err := reg.Dispatch(&model.Box{}); !errors.Is(err, ErrNoRenderer) {
		t.Errorf("err = %v, want ErrNoRenderer", err)
	}
	if reg.Kinds() != 1 {
		t.Errorf("Kinds() = %d, want 1", reg.Kinds())
	}
}

func TestRegistryReplace(t *testing.T) {
	reg := NewRegistry()
	reg.Register(kindRect, newCountingRenderer())
	second := newCountingRenderer()
	reg.Register(kindRect, second)

	r, ok := reg.Lookup(kindRect)
	if !ok || r != ObjectRenderer(second) {
		t.Error("Register should replace the previous renderer")
	}
}

type nilFingerprinter struct{}

func (nilFingerprinter) Draw(*gg.Context, Resolution, model.Object) error { return nil }

func (nilFingerprinter) Fingerprint(Resolution, model.Object) Fingerprint { return nil }

func TestRegistryFingerprint(t *testing.T) {
	reg := NewRegistry()
	reg.Register(kindRect, nilFingerprinter{})

	if fp, err := reg.fingerprint(res200, newRect("a", 0, 0, "#000000")); err != nil || fp == nil || len(fp) != 0 {
		t.Errorf("nil fingerprint = %#v, %v, want empty non-nil", fp, err)
	}
	if fp, err := reg.fingerprint(res200, &model.Box{}); err != nil || fp == nil || len(fp) != 0 {
		t.Errorf("unknown kind fingerprint = %#v, %v, want empty non-nil", fp, err)
	}
}

func TestRegistryFingerprintRecoversPanic(t *testing.T) {
	reg := NewRegistry()
	reg.Register(kindFlaky, flakyRenderer{})

	fp, err := reg.fingerprint(res200, newFlaky("x"))
	var pe *PanicError
	if !errors.As(err, &pe) || pe.Value != "fingerprint boom" {
		t.Errorf("err = %v, want a PanicError", err)
	}
	if fp == nil || len(fp) != 0 {
		t.Errorf("fingerprint = %#v, want empty non-nil", fp)
	}
}

func TestRegisterFunc(t *testing.T) {
	reg := NewRegistry()
	drawn := 0
	RegisterFunc(reg, model.KindBox,
		func(dc *gg.Context, res Resolution, b *model.Box) error {
			drawn++
			return nil
		},
		func(res Resolution, b *model.Box) Fingerprint {
			return Fingerprint{b.Fill}
		},
	)

	r, err := reg.Dispatch(&model.Box{Fill: "#FFF"})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	dc := gg.NewContext(10, 10)
	if err := r.Draw(dc, res200, &model.Box{}); err != nil || drawn != 1 {
		t.Errorf("Draw: err %v, drawn %d", err, drawn)
	}
	if fp := r.Fingerprint(res200, &model.Box{Fill: "#FFF"}); !fp.Equal(Fingerprint{"#FFF"}) {
		t.Errorf("Fingerprint = %v, want [#FFF]", fp)
	}

	// A mismatched concrete type under the same kind.
	if err := r.Draw(dc, res200, &fakeBox{}); !errors.Is(err, ErrUnexpectedObject) {
		t.Errorf("err = %v, want ErrUnexpectedObject", err)
	}
	if fp := r.Fingerprint(res200, &fakeBox{}); len(fp) != 0 {
		t.Errorf("Fingerprint = %v, want empty", fp)
	}
}

type fakeBox struct{ model.Base }

func (*fakeBox) Kind() model.Kind { return model.KindBox }
