package script

import (
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/NikitaCOEUR/statline/internal/config"
)

// headerData feeds the header template.
type headerData struct {
	Version  string
	Features []string
	Theme    string
}

var headerTmpl = template.Must(
	template.New("header").Funcs(sprig.TxtFuncMap()).Parse(headerTemplate),
)

// renderHeader produces the shebang and identification comment that opens
// every generated script.
func renderHeader(cfg *config.Config, version string) (string, error) {
	features := make([]string, 0, len(cfg.Features))
	for _, f := range cfg.Features {
		features = append(features, string(f))
	}

	var b strings.Builder
	err := headerTmpl.Execute(&b, headerData{
		Version:  version,
		Features: features,
		Theme:    cfg.Theme,
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
