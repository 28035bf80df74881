// Package platform provides the filesystem primitives the generators build on:
// writing file sets, relative symlinks, exact directory comparison and the
// bounded project walk. On Unix systems symlinks are native. On Windows
// without developer mode it falls back to copying the file and recording the
// target in a .target sidecar.
package platform
