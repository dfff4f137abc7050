package domain

// Project is the resolved configuration for one shader tree.
type Project struct {
	Root     string
	Layout   Layout
	Variant  Variant
	Compiler string

	// CompilerFlags are passed to the compiler ahead of the source file.
	CompilerFlags []string
}

// NewProject returns a Project with the conventional layout, the full variant and glslc.
func NewProject(root string) *Project {
	return &Project{
		Root:     root,
		Layout:   DefaultLayout(root),
		Variant:  VariantFull,
		Compiler: DefaultCompiler,
	}
}

// Jobs returns the project's job list in enumeration order.
func (p *Project) Jobs() ([]Job, error) {
	return PlanJobs(p.Layout, p.Variant)
}
