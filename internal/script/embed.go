package script

import _ "embed"

// Embedded script templates, compiled into the binary at build time.

//go:embed templates/header.sh.tmpl
var headerTemplate string
