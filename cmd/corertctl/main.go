// Command corertctl exercises the allocator, disposable-registry, indexer,
// array, and name-interner packages from the command line, for manual
// inspection rather than as a supported API.
package main

func main() {
	execute()
}
