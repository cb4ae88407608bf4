// Package infrastructure contains concrete implementations of the core
// interfaces: the SQLite catalog store, memory and Redis caches, HTTP
// clients and the logrus logger. Core packages depend only on the
// interfaces, never on these implementations.
package infrastructure
