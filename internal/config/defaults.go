package config

const (
	defaultManualDir   = "~/.local/share/refmatch/manual"
	defaultSectionsDir = "~/.local/share/refmatch/sections"
	defaultCatalogDir  = "~/.local/share/refmatch/catalog"
	defaultOutputDir   = "~/.local/share/refmatch/output"
	defaultLogDir      = "~/.local/share/refmatch/logs"

	defaultMinSectionChars = 100
	defaultPreviewChars    = 200

	defaultMinScore       = 0.6
	defaultFuzzyThreshold = 0.7
	defaultFuzzyWeight    = 0.85
	defaultTopK           = 5
	defaultBodyWindow     = 500
	defaultMinTermLength  = 4
	defaultAliasLanguage  = "en"
	defaultHighScore      = 0.85

	defaultWorkers = 4

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// defaultChapters is the page-range table for the 11th edition of the
// target manual. Page numbers are end-exclusive positions in the source
// document, not printed book pages.
func defaultChapters() []Chapter {
	return []Chapter{
		{Code: "CIR", Name: "Circulatory System", StartPage: 41, EndPage: 146},
		{Code: "DIG", Name: "Digestive System", StartPage: 146, EndPage: 527},
		{Code: "EE", Name: "Eye and Ear", StartPage: 527, EndPage: 577},
		{Code: "END", Name: "Endocrine System", StartPage: 577, EndPage: 625},
		{Code: "GEN", Name: "Generalized Conditions", StartPage: 625, EndPage: 851},
		{Code: "IMM", Name: "Immune System", StartPage: 851, EndPage: 873},
		{Code: "ITG", Name: "Integumentary System", StartPage: 873, EndPage: 1023},
		{Code: "MET", Name: "Metabolic Disorders", StartPage: 1023, EndPage: 1071},
		{Code: "MUS", Name: "Musculoskeletal System", StartPage: 1071, EndPage: 1247},
		{Code: "NER", Name: "Nervous System", StartPage: 1247, EndPage: 1361},
		{Code: "REP", Name: "Reproductive System", StartPage: 1361, EndPage: 1449},
		{Code: "RES", Name: "Respiratory System", StartPage: 1449, EndPage: 1533},
		{Code: "URN", Name: "Urinary System", StartPage: 1533, EndPage: 1573},
		{Code: "BEH", Name: "Behavior", StartPage: 1573, EndPage: 1623},
		{Code: "EMG", Name: "Emergency Medicine", StartPage: 1697, EndPage: 1771},
		{Code: "EXL", Name: "Exotic and Lab Animals", StartPage: 1771, EndPage: 2101},
		{Code: "TOX", Name: "Toxicology", StartPage: 2985, EndPage: 3213},
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ManualDir:   defaultManualDir,
			SectionsDir: defaultSectionsDir,
			CatalogDir:  defaultCatalogDir,
			OutputDir:   defaultOutputDir,
			LogDir:      defaultLogDir,
		},
		Chapters: defaultChapters(),
		Segmentation: Segmentation{
			MinSectionChars: defaultMinSectionChars,
			PreviewChars:    defaultPreviewChars,
		},
		Matching: Matching{
			MinScore:       defaultMinScore,
			FuzzyThreshold: defaultFuzzyThreshold,
			FuzzyWeight:    defaultFuzzyWeight,
			TopK:           defaultTopK,
			BodyWindow:     defaultBodyWindow,
			MinTermLength:  defaultMinTermLength,
			AliasLanguage:  defaultAliasLanguage,
			HighScore:      defaultHighScore,
		},
		Workflow: Workflow{
			Workers: defaultWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
