// Package textobj draws text slide objects.
//
// Text is shaped and rasterized by gg's text package. Fonts are looked up in
// a FontLibrary by family and weight; the Go fonts are always available as
// the fallback family. Wrapped line layouts are cached per content, font and
// box width, so only edited text is laid out again.
//
//	fonts, err := textobj.NewFontLibrary()
//	if err != nil {
//	    return err
//	}
//	textobj.Register(reg, textobj.New(fonts))
package textobj
