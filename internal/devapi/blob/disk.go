package blob

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pharmadmin/internal/filex"
)

// Disk keeps assets in a local directory. The directory is meant to be served
// at publicBase.
type Disk struct {
	root       string
	publicBase string
}

func NewDisk(dir, publicBase string) (*Disk, error) {
	root, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("media dir: %w", err)
	}
	return &Disk{root: root, publicBase: publicBase}, nil
}

// Root is the absolute media directory.
func (d *Disk) Root() string { return d.root }

func (d *Disk) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	p, err := filex.SafeJoin(d.root, key)
	if err != nil {
		return "", err
	}
	if err := filex.WriteFileAtomic(p, data); err != nil {
		return "", err
	}
	return publicURL(d.publicBase, key), nil
}
