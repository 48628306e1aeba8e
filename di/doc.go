// Package di provides a small keyed component registry with lazy
// construction.
//
// Components are registered under string keys, either as pre-created
// singletons or as zero-argument constructors invoked on first resolve. The
// registry can also be queried by produced type (KeysForType), which is how
// the resolution engine locates denial handler instances without knowing
// registration keys.
//
//	c := di.NewContainer()
//	c.RegisterSingleton("audit_handler", &audit.DenyLogger{})
//	keys := c.KeysForType("*audit.DenyLogger") // ["audit_handler"]
package di
