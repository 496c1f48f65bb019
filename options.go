package slide

// DefaultMinTargetWidth is the narrowest target, in pixels, that is rendered.
// Narrower surfaces are skipped entirely.
const DefaultMinTargetWidth = 4

// Option configures a Renderer during creation.
//
// Example:
//
//	r := slide.New(
//	    slide.WithRegistry(reg),
//	    slide.WithBackgroundPainter(&slide.ThemePainter{Images: loader}),
//	)
type Option func(*options)

type options struct {
	registry       *Registry
	background     BackgroundPainter
	minTargetWidth int
	newSurface     SurfaceFactory
}

func defaultOptions() options {
	return options{
		minTargetWidth: DefaultMinTargetWidth,
	}
}

// WithRegistry sets the object renderer registry. Without it the renderer
// only knows how to draw boxes.
func WithRegistry(reg *Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// WithBackgroundPainter sets the painter of the theme background.
// The default is a ThemePainter without image support.
func WithBackgroundPainter(p BackgroundPainter) Option {
	return func(o *options) {
		o.background = p
	}
}

// WithMinTargetWidth sets the narrowest target width that is rendered.
func WithMinTargetWidth(px int) Option {
	return func(o *options) {
		o.minTargetWidth = px
	}
}

// WithSurfaceFactory sets how off-screen tile surfaces are created.
func WithSurfaceFactory(f SurfaceFactory) Option {
	return func(o *options) {
		o.newSurface = f
	}
}
