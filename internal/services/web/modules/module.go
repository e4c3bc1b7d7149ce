// Package modules defines the web module registry.
package modules

import "github.com/louisbranch/frontpage/internal/services/web/module"

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies aliases the shared runtime handed to every module.
type Dependencies = module.Dependencies
