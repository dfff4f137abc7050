package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/spvbuild/internal/core/ports"
)

const (
	OutputDirNodeID graft.ID = "adapter.fs.outputdir"
	VerifierNodeID  graft.ID = "adapter.fs.verifier"
	HasherNodeID    graft.ID = "adapter.fs.hasher"
)

func init() {
	graft.Register(graft.Node[ports.OutputDir]{
		ID:        OutputDirNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.OutputDir, error) {
			return NewOutputDir(), nil
		},
	})

	graft.Register(graft.Node[ports.Verifier]{
		ID:        VerifierNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Verifier, error) {
			return NewVerifier(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})
}
