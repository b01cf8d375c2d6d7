package dumper

// DefaultOutputFileName is the report written into the working directory.
const DefaultOutputFileName = "my_files.txt"

// DefaultExcludeNames lists the base names skipped at every depth.
// The report itself is listed so a rerun never dumps its previous output.
// Names tied to a single project (gist_venv, gists.json, cat_code.py,
// start_repo.py, backup folders) are deliberately not included.
var DefaultExcludeNames = []string{
	".git",
	".idea",
	"__pycache__",
	".gitignore",
	"venv",
	".env",
	"node_modules",
	".next",
	"assets",
	"README.md",
	"readme.md",
	"todo.md",
	DefaultOutputFileName,
}

// ExclusionSet holds literal base names. Matching is exact and case-sensitive.
type ExclusionSet map[string]struct{}

// NewExclusionSet builds an ExclusionSet from names. Empty names are dropped.
func NewExclusionSet(names []string) ExclusionSet {
	exclusionSet := make(ExclusionSet, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		exclusionSet[name] = struct{}{}
	}
	return exclusionSet
}

// Contains reports whether name is excluded.
func (exclusionSet ExclusionSet) Contains(name string) bool {
	_, excluded := exclusionSet[name]
	return excluded
}

