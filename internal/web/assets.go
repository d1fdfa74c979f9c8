// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"embed"
	"io/fs"
)

// The web layer owns every page template and static asset; both trees are
// compiled into the binary so a deployment is a single file plus its
// migrations directory.

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates returns the embedded template tree consumed by the render engine.
func Templates() fs.FS {
	return templateFS
}
