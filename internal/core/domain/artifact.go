package domain

// Artifact reports the on-disk state of a job's compiled output.
type Artifact struct {
	Job    Job
	Exists bool
	Size   int64
	Digest string
}
