package filekind

import (
	"path/filepath"
	"strings"
)

// Mode selects how boundaries are detected for a file.
type Mode int

const (
	Text Mode = iota
	Markdown
	Code
)

func (m Mode) String() string {
	switch m {
	case Markdown:
		return "markdown"
	case Code:
		return "code"
	default:
		return "text"
	}
}

// Kind is the classified parse mode of a file. Lang carries the language
// hint when Mode is Code.
type Kind struct {
	Mode Mode
	Lang string
}

func (k Kind) String() string {
	if k.Mode == Code {
		return k.Lang
	}
	return k.Mode.String()
}

// PlainText is the fallback kind for unknown extensions and in-memory text.
var PlainText = Kind{Mode: Text}

// Classify maps a file path to its parse mode by extension. The lookup is
// case-insensitive and pure; nothing is read from disk. Unknown or missing
// extensions classify as plain text.
func Classify(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".go":
		return Kind{Mode: Code, Lang: "go"}
	case ".py", ".pyw":
		return Kind{Mode: Code, Lang: "python"}
	case ".js", ".jsx", ".mjs":
		return Kind{Mode: Code, Lang: "javascript"}
	case ".ts", ".tsx":
		return Kind{Mode: Code, Lang: "typescript"}
	case ".java":
		return Kind{Mode: Code, Lang: "java"}
	case ".c", ".h":
		return Kind{Mode: Code, Lang: "c"}
	case ".cpp", ".cc", ".cxx", ".hpp", ".hh":
		return Kind{Mode: Code, Lang: "cpp"}
	case ".rs":
		return Kind{Mode: Code, Lang: "rust"}
	case ".rb":
		return Kind{Mode: Code, Lang: "ruby"}
	case ".php":
		return Kind{Mode: Code, Lang: "php"}
	case ".sh", ".bash", ".zsh":
		return Kind{Mode: Code, Lang: "shell"}
	case ".md", ".markdown":
		return Kind{Mode: Markdown, Lang: "markdown"}
	default:
		return PlainText
	}
}
