package cases

import "embed"

// builtinCasesFS embeds the builtin suite.
//
//go:embed builtin/*.yml
var builtinCasesFS embed.FS
