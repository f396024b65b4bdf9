// Package modcache shares compiled WebAssembly modules between their users.
//
// Compiling a module is expensive; keeping it compiled after everyone is done
// with it wastes memory. The cache gives each caller a handle.Shared owner of
// the compiled module and keeps only a handle.Weak entry for itself:
//
//	cache := modcache.New(rt)
//	defer cache.Close()
//
//	m, err := cache.Compile(ctx, "parser", wasmBytes)
//	if err != nil {
//	    return err
//	}
//	defer m.Drop()
//
//	inst, err := cache.Instantiate(ctx, m, wazero.NewModuleConfig().WithName("parser-1"))
//
// A second Compile under the same name while m is alive returns another owner
// of the same module. When the last owner drops it, the wazero CompiledModule
// is closed and the cache entry expires.
package modcache
