// Package imageobj draws image objects onto slides.
//
// A [Loader] resolves image references through a [Source], sniffs the
// encoded format and keeps decoded images in a bounded cache. The same
// Loader serves image theme backgrounds as a slide.ImageProvider.
//
// A [Renderer] crops, fits and scales an image into its object box. Scaled
// pixels are cached per pixel size, so redraws after an unrelated edit on
// the same tile only pay for the blit.
//
// Typical setup:
//
//	loader := imageobj.NewLoader(imageobj.FSSource{FS: os.DirFS(dir)})
//	reg := slide.NewRegistry()
//	imageobj.Register(reg, imageobj.New(loader))
//	r := slide.New(
//		slide.WithRegistry(reg),
//		slide.WithBackgroundPainter(&slide.ThemePainter{Images: loader}),
//	)
package imageobj
