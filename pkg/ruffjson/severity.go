package ruffjson

// Severity ranks diagnostics from clean to error. Higher is worse.
type Severity int

const (
	// SeverityUnknown marks codes from rule groups this package does not know.
	SeverityUnknown Severity = iota - 1
	// SeverityNone is the severity of a clean report.
	SeverityNone
	// SeverityFixed marks issues an auto-fix pass already resolved.
	SeverityFixed
	SeverityInfo
	SeverityConvention
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "clean"
	case SeverityFixed:
		return "fixed"
	case SeverityInfo:
		return "info"
	case SeverityConvention:
		return "convention"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Level maps a severity onto the three SARIF result levels.
func (s Severity) Level() string {
	switch {
	case s >= SeverityError:
		return "error"
	case s == SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}

// rulesets maps a ruff rule-group prefix to the severity its findings
// carry. Keys are the prefixes ruff itself documents, including the
// digit-bearing ones (C4, C90, T10, T20).
var rulesets = map[string]Severity{
	"F":     SeverityError,      // Pyflakes
	"E":     SeverityError,      // pycodestyle errors
	"W":     SeverityWarning,    // pycodestyle warnings
	"C90":   SeverityConvention, // mccabe complexity
	"I":     SeverityConvention, // isort
	"N":     SeverityConvention, // pep8-naming
	"D":     SeverityInfo,       // pydocstyle
	"UP":    SeverityConvention, // pyupgrade
	"YTT":   SeverityWarning,    // flake8-2020
	"ANN":   SeverityInfo,       // flake8-annotations
	"ASYNC": SeverityWarning,    // flake8-async
	"S":     SeverityWarning,    // flake8-bandit
	"BLE":   SeverityConvention, // flake8-blind-except
	"FBT":   SeverityConvention, // flake8-boolean-trap
	"B":     SeverityWarning,    // flake8-bugbear
	"A":     SeverityError,      // flake8-builtins
	"COM":   SeverityInfo,       // flake8-commas
	"C4":    SeverityConvention, // flake8-comprehensions
	"DTZ":   SeverityConvention, // flake8-datetimez
	"T10":   SeverityError,      // flake8-debugger
	"DJ":    SeverityConvention, // flake8-django
	"EM":    SeverityWarning,    // flake8-errmsg
	"EXE":   SeverityWarning,    // flake8-executable
	"FA":    SeverityConvention, // flake8-future-annotations
	"ISC":   SeverityWarning,    // flake8-implicit-str-concat
	"ICN":   SeverityConvention, // flake8-import-conventions
	"LOG":   SeverityConvention, // flake8-logging
	"G":     SeverityConvention, // flake8-logging-format
	"INP":   SeverityError,      // flake8-no-pep420
	"PIE":   SeverityConvention, // flake8-pie
	"T20":   SeverityError,      // flake8-print
	"PYI":   SeverityConvention, // flake8-pyi
	"PT":    SeverityConvention, // flake8-pytest-style
	"Q":     SeverityConvention, // flake8-quotes
	"RSE":   SeverityWarning,    // flake8-raise
	"RET":   SeverityConvention, // flake8-return
	"SLF":   SeverityConvention, // flake8-self
	"SLOT":  SeverityConvention, // flake8-slots
	"SIM":   SeverityConvention, // flake8-simplify
	"TID":   SeverityConvention, // flake8-tidy-imports
	"TC":    SeverityConvention, // flake8-type-checking
	"TCH":   SeverityConvention, // flake8-type-checking (pre-0.5 prefix)
	"INT":   SeverityConvention, // flake8-gettext
	"ARG":   SeverityWarning,    // flake8-unused-arguments
	"PTH":   SeverityConvention, // flake8-use-pathlib
	"TD":    SeverityWarning,    // flake8-todos
	"FIX":   SeverityWarning,    // flake8-fixme
	"ERA":   SeverityWarning,    // eradicate
	"PD":    SeverityConvention, // pandas-vet
	"PGH":   SeverityConvention, // pygrep-hooks
	"PL":    SeverityConvention, // Pylint umbrella
	"PLC":   SeverityConvention, // Pylint convention
	"PLE":   SeverityError,      // Pylint error
	"PLR":   SeverityConvention, // Pylint refactor
	"PLW":   SeverityWarning,    // Pylint warning
	"TRY":   SeverityConvention, // tryceratops
	"FLY":   SeverityConvention, // flynt
	"NPY":   SeverityConvention, // NumPy rules
	"FAST":  SeverityConvention, // FastAPI rules
	"AIR":   SeverityConvention, // Airflow rules
	"PERF":  SeverityConvention, // Perflint
	"FURB":  SeverityConvention, // refurb
	"DOC":   SeverityConvention, // pydoclint
	"RUF":   SeverityConvention, // ruff-specific rules
}

// maxPrefixLen is the longest ruleset prefix in the table (ASYNC).
const maxPrefixLen = 5

// Classify resolves a rule code like "E501" or "PLR0913" to its ruleset
// prefix and severity. Longer prefixes win, so "PLR0913" matches PLR
// before PL. An empty code is a syntax error. Unrecognized codes get
// SeverityUnknown.
func Classify(code string) (string, Severity) {
	if code == "" {
		return "syntax", SeverityError
	}

	n := len(code)
	if n > maxPrefixLen {
		n = maxPrefixLen
	}
	for i := n; i > 0; i-- {
		prefix := code[:i]
		if sev, ok := rulesets[prefix]; ok {
			return prefix, sev
		}
	}

	return "", SeverityUnknown
}
