// Package modules contains self-contained application features.
//
// Each subdirectory is a module that implements the `module.Module` interface.
// Modules are listed in `internal/app` and are registered, booted and shut
// down by the server in that order.
package modules
