package cases

// yamlCase is the on-disk form of a Case.
type yamlCase struct {
	ID                     string `yaml:"id"`
	Name                   string `yaml:"name"`
	Description            string `yaml:"description,omitempty"`
	Text                   string `yaml:"text"`
	Pattern                string `yaml:"pattern"`
	Modulus                int    `yaml:"modulus,omitempty"`
	Expected               []int  `yaml:"expected"`
	ExpectedNonOverlapping []int  `yaml:"expected_non_overlapping,omitempty"`
	Error                  bool   `yaml:"error,omitempty"`
}

// yamlCasesFile is the top-level structure of a suite file.
type yamlCasesFile struct {
	Cases []yamlCase `yaml:"cases"`
}
