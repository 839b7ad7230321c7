package site

import "embed"

//go:embed page.template.html
var pageHTMLfs embed.FS
