package dom

import (
	"errors"

	"github.com/l3aro/go-dominance-query/pkg/cfg"
)

// ErrNotImplemented is returned by analyses that expose a surface without an
// implementation behind it.
var ErrNotImplemented = errors.New("not implemented")

// DominanceFrontier is a placeholder for dominance-frontier computation.
// It always returns ErrNotImplemented.
func (info *Info) DominanceFrontier() (map[*cfg.Block]BlockSet, error) {
	return nil, ErrNotImplemented
}
