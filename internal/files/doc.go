// Package files locates holdings exports on disk.
//
// Discovery lists candidate holdings files (.csv, .tsv, .txt) in a
// directory, newest first, and resolves an input path that may name either
// a concrete file or a directory to scan.
//
// Example usage:
//
//	discovery := files.NewDiscovery("")
//
//	// Pick the newest holdings export from a downloads directory.
//	path, err := discovery.ResolveInput("downloads")
package files
