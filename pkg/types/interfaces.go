package types

import (
	"io/fs"
)

// FS is the read-only filesystem surface needed to load package manifests
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	ReadDir(name string) ([]fs.DirEntry, error)
}
