package ports

// OutputDir manages the compiled output directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type OutputDir interface {
	// EnsureDir creates the directory and any missing parents.
	// An existing directory is not an error; created reports whether anything was made.
	EnsureDir(path string) (created bool, err error)

	// Clean removes the directory and everything inside it.
	Clean(path string) error
}

// Verifier defines the interface for verifying file existence.
type Verifier interface {
	// VerifyOutputs checks if all output files exist in the given root directory.
	VerifyOutputs(root string, outputs []string) (bool, error)
}

// Hasher computes content digests of compiled artifacts.
type Hasher interface {
	// ComputeFileHash returns the hex digest of the file's content.
	ComputeFileHash(path string) (string, error)
}
