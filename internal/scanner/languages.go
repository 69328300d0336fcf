package scanner

import "path/filepath"

// languageInfo maps a file extension to a language name and its line-comment
// token. Only languages with line comments are listed; block-comment-only
// formats have no godoc-style annotation convention to detect.
type languageInfo struct {
	name         string
	commentToken string
}

var languagesByExt = map[string]languageInfo{
	".go":   {"go", "//"},
	".ts":   {"typescript", "//"},
	".tsx":  {"typescript", "//"},
	".js":   {"javascript", "//"},
	".jsx":  {"javascript", "//"},
	".java": {"java", "//"},
	".rs":   {"rust", "//"},
	".c":    {"c", "//"},
	".h":    {"c", "//"},
	".php":  {"php", "//"},
	".py":   {"python", "#"},
	".rb":   {"ruby", "#"},
}

// LanguageFor returns the language name and comment token for a path, applying
// any configured per-extension token overrides. ok is false for extensions
// with no known line-comment convention.
func LanguageFor(path string, overrides map[string]string) (lang, token string, ok bool) {
	ext := filepath.Ext(path)
	info, found := languagesByExt[ext]
	if !found {
		if tok, has := overrides[ext]; has && len(ext) > 1 {
			return ext[1:], tok, true
		}
		return "", "", false
	}
	if tok, has := overrides[ext]; has {
		return info.name, tok, true
	}
	return info.name, info.commentToken, true
}
