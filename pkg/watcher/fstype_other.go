//go:build !linux

package watcher

// Classification needs statfs magic numbers; elsewhere every existing path
// counts as local and fsnotify is tried first.
func statFilesystemType(string) FilesystemType {
	return FSTypeLocal
}
