package render

import (
	"context"
	"testing"

	errs "github.com/matzehuels/treemap/pkg/errors"
)

func TestConvertWithoutRsvg(t *testing.T) {
	old := rsvgBinary
	rsvgBinary = "rsvg-convert-does-not-exist"
	defer func() { rsvgBinary = old }()

	if Available() {
		t.Fatal("Available() = true for missing binary")
	}
	_, err := ToPNG(context.Background(), []byte("<svg/>"), 2)
	if !errs.Is(err, errs.ErrCodeUnsupported) {
		t.Errorf("ToPNG error = %v, want UNSUPPORTED", err)
	}
	_, err = ToPDF(context.Background(), []byte("<svg/>"))
	if !errs.Is(err, errs.ErrCodeUnsupported) {
		t.Errorf("ToPDF error = %v, want UNSUPPORTED", err)
	}
}
