package index

import "embed"

//go:embed index.template.html
var indexHTMLfs embed.FS
