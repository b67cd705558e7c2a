// Package loader provides the feature loading system.
//
// Each feature implements the Feature interface, which reports whether it is enabled and
// registers its routes.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager holds registered features and loads the enabled ones with LoadAll, in
// registration order.
package loader
